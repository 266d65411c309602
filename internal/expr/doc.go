// Package expr defines the symbolic expressions abstract domains are evaluated over.
//
// The vocabulary is closed: constants, identifiers, unary and binary expressions over
// a fixed operator set. Anything a front-end cannot express with these shapes should be
// lowered to a fresh identifier, domains then treat it as an unknown value.
package expr
