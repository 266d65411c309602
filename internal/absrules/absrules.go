package absrules

import (
	"fmt"
	"strings"
)

// Rule represents an absint rule code (ABS-series).
type Rule int

const (
	ruleInvalid Rule = iota

	ABS001ConditionAlwaysTrue
	ABS002ConditionAlwaysFalse
	ABS010DivisionByZero
)

var ruleCodes = map[Rule]string{
	ABS001ConditionAlwaysTrue:  "ABS001",
	ABS002ConditionAlwaysFalse: "ABS002",
	ABS010DivisionByZero:       "ABS010",
}

var ruleNames = map[Rule]string{
	ABS001ConditionAlwaysTrue:  "ConditionAlwaysTrue",
	ABS002ConditionAlwaysFalse: "ConditionAlwaysFalse",
	ABS010DivisionByZero:       "DivisionByZero",
}

// All lists every known rule in code order.
func All() []Rule {
	return []Rule{
		ABS001ConditionAlwaysTrue,
		ABS002ConditionAlwaysFalse,
		ABS010DivisionByZero,
	}
}

// Code returns the bare rule code, like "ABS001".
func (r Rule) Code() string {
	if v, ok := ruleCodes[r]; ok {
		return v
	}

	return fmt.Sprintf("ABS???(%d)", int(r))
}

// String returns the canonical code and short name of the rule.
// Example: "ABS001: ConditionAlwaysTrue"
func (r Rule) String() string {
	name, ok := ruleNames[r]
	if !ok {
		return fmt.Sprintf("rule-unknown(%d)", int(r))
	}

	return r.Code() + ": " + name
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case ABS001ConditionAlwaysTrue:
		return "Condition holds in every reachable state, the else branch is dead."
	case ABS002ConditionAlwaysFalse:
		return "Condition never holds in a reachable state, the then branch is dead."
	case ABS010DivisionByZero:
		return "Divisor is zero in every reachable state."
	default:
		return fmt.Sprintf("unknown-rule(%d)", int(r))
	}
}

// UnmarshalText accepts either a bare code ("ABS001") or a short name ("ConditionAlwaysTrue"),
// case-insensitively.
func (r *Rule) UnmarshalText(rawtext []byte) error {
	text := strings.TrimSpace(string(rawtext))
	for k, code := range ruleCodes {
		if strings.EqualFold(code, text) || strings.EqualFold(ruleNames[k], text) {
			*r = k
			return nil
		}
	}

	return fmt.Errorf("unknown rule %q", text)
}

// MarshalText renders the rule as its bare code.
func (r Rule) MarshalText() ([]byte, error) {
	code, ok := ruleCodes[r]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Rule(%d)", int(r))
	}

	return []byte(code), nil
}

// Canonical constructors, for readability and stable call sites.

func ConditionAlwaysTrue() Rule  { return ABS001ConditionAlwaysTrue }
func ConditionAlwaysFalse() Rule { return ABS002ConditionAlwaysFalse }
func DivisionByZero() Rule       { return ABS010DivisionByZero }

// ForCondition picks the rule for a condition with a decided outcome.
func ForCondition(holds bool) Rule {
	if holds {
		return ABS001ConditionAlwaysTrue
	}

	return ABS002ConditionAlwaysFalse
}
