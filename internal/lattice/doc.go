// Package lattice holds the contract every abstract domain of this module implements
// and the few values shared between domains.
//
// Domain values are immutable: every operation returns a fresh value and never touches
// its receiver or arguments, so values can be shared between program points and
// goroutines freely.
//
// Operations that take expressions return an error only when the expression itself is
// malformed (see [ErrDomainComputation]). Imprecision is never an error, it turns into
// Top or [Unknown].
package lattice
