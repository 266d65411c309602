// Package absrules defines the rule codes (ABS-series) reported by the absint analyzer.
//
// Rule numbering scheme:
//
//	000–009  Conditions decided by the abstract state
//	010–019  Arithmetic that cannot complete
//
// Codes are stable: they are what users put into the disabled_rules list of a
// configuration file, so a rule may be retired but its number is never reused.
package absrules
