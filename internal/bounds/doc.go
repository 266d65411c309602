// Package bounds implements the strict upper bounds domain: for every variable x it keeps
// the set of variables proven strictly greater than x.
//
// The lattice is ordered by inverse inclusion. A missing entry is the empty set, the
// least informative one. Facts are kept transitively closed: y ∈ B(x) and z ∈ B(y) imply
// z ∈ B(x).
//
// Shifts by a constant are taken as exact: y + 1 is above y. The domain has no values to
// tell when such arithmetic wraps, products holding intervals must drop those bounds.
package bounds
