package combine

import (
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// Pair is what refinements operate on.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Refinement is the cross term of a product. Implementations are expected to be empty
// structs: products use their zero value.
type Refinement[L lattice.Domain[L], R lattice.Domain[R]] interface {
	// LessOrEqual is the complete order of the product.
	LessOrEqual(a, b Pair[L, R]) bool

	// Lub gets both operands and their componentwise join and returns the final join.
	Lub(a, b, joined Pair[L, R]) Pair[L, R]

	// Assign gets states before and after componentwise assignment and returns the final
	// state.
	Assign(before, after Pair[L, R], id expr.Identifier, e expr.Expr) Pair[L, R]
}

// Renderer may be implemented by a refinement to render product values.
type Renderer[L, R any] interface {
	Render(p Pair[L, R]) string
}

// Knowledge may be implemented by a refinement to decide which identifiers a product
// value knows. Products know identifiers either component knows otherwise.
type Knowledge[L, R any] interface {
	KnowsIdentifier(p Pair[L, R], id expr.Identifier) bool
}

// Plain is the refinement with no cross terms.
type Plain[L lattice.Domain[L], R lattice.Domain[R]] struct{}

// LessOrEqual is componentwise.
func (Plain[L, R]) LessOrEqual(a, b Pair[L, R]) bool {
	return a.Left.LessOrEqual(b.Left) && a.Right.LessOrEqual(b.Right)
}

// Lub is componentwise.
func (Plain[L, R]) Lub(_, _, joined Pair[L, R]) Pair[L, R] {
	return joined
}

// Assign is componentwise.
func (Plain[L, R]) Assign(_, after Pair[L, R], _ expr.Identifier, _ expr.Expr) Pair[L, R] {
	return after
}
