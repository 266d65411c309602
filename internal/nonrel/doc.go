// Package nonrel lifts a value domain to program states: every identifier is mapped to
// its own abstract value, independently of the others.
package nonrel
