// Package tracing runs abstract domains over SSA form.
//
// It connects Go source with the symbolic expressions domains understand
// and drives a domain across the control flow graph of a function until
// the states at every block entry stabilize.
//
// Core components:
//
//   - Translate
//     Lowers SSA values into expressions. Anything without a faithful
//     expression is reported as opaque and the interpreter forgets it.
//
//   - Interpret
//     A forward worklist over basic blocks. Phi nodes are assigned per
//     incoming edge, branch edges are refined with the branch condition,
//     loops are stabilized with widening.
//
//   - Context
//     Maps source positions to the innermost condition-bearing statement,
//     so findings on SSA values can be attributed to the if or for they
//     came from.
//
//   - Reporter
//     Collects findings from concurrent analyses.
package tracing
