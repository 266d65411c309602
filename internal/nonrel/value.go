package nonrel

import (
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// Value is what a value domain must provide to be lifted. Evaluation methods ignore
// their receiver, they are methods only to be reachable through the type parameter.
type Value[V any] interface {
	lattice.Lattice[V]

	EvalConstant(c expr.Constant) V
	EvalUnary(op expr.Operator, arg V) V
	EvalBinary(op expr.Operator, left, right V) V
	SatisfiesBinary(op expr.Operator, left, right V) lattice.Satisfiability
}

// Refiner is implemented by value domains able to learn from an assumed comparison.
// Refine returns current restricted to values standing in relation op with other.
type Refiner[V any] interface {
	Refine(op expr.Operator, current, other V) V
}
