// Package congruence implements the congruence domain: every integer variable is
// approximated with a set {residue + k·modulus | k ∈ ℤ}.
//
// Modulus 0 stands for a known constant, modulus 1 for an unconstrained value.
package congruence
