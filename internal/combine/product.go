package combine

import (
	"github.com/sirkon/errors"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// Product is a state made of two component states and refined with F.
type Product[L lattice.Domain[L], R lattice.Domain[R], F Refinement[L, R]] struct {
	Left  L
	Right R
}

// New creates a product value.
func New[L lattice.Domain[L], R lattice.Domain[R], F Refinement[L, R]](left L, right R) Product[L, R, F] {
	return Product[L, R, F]{Left: left, Right: right}
}

func (p Product[L, R, F]) pair() Pair[L, R] {
	return Pair[L, R]{Left: p.Left, Right: p.Right}
}

func (p Product[L, R, F]) from(v Pair[L, R]) Product[L, R, F] {
	return Product[L, R, F]{Left: v.Left, Right: v.Right}
}

func (p Product[L, R, F]) refinement() F {
	var f F
	return f
}

// Top returns the product of component tops.
func (p Product[L, R, F]) Top() Product[L, R, F] {
	return Product[L, R, F]{Left: p.Left.Top(), Right: p.Right.Top()}
}

// Bottom returns the product of component bottoms.
func (p Product[L, R, F]) Bottom() Product[L, R, F] {
	return Product[L, R, F]{Left: p.Left.Bottom(), Right: p.Right.Bottom()}
}

// IsTop needs both components to be Top.
func (p Product[L, R, F]) IsTop() bool {
	return p.Left.IsTop() && p.Right.IsTop()
}

// IsBottom needs both components to be Bottom. A value with a single Bottom component
// is not recognized as Bottom.
func (p Product[L, R, F]) IsBottom() bool {
	return p.Left.IsBottom() && p.Right.IsBottom()
}

// Infeasible tells if any component is Bottom. Components describe the same concrete
// states, so such a value describes none.
func (p Product[L, R, F]) Infeasible() bool {
	return p.Left.IsBottom() || p.Right.IsBottom()
}

// LessOrEqual delegates to the refinement.
func (p Product[L, R, F]) LessOrEqual(other Product[L, R, F]) bool {
	return p.refinement().LessOrEqual(p.pair(), other.pair())
}

// Lub joins componentwise and lets the refinement recover lost facts.
func (p Product[L, R, F]) Lub(other Product[L, R, F]) Product[L, R, F] {
	joined := Pair[L, R]{
		Left:  p.Left.Lub(other.Left),
		Right: p.Right.Lub(other.Right),
	}

	return p.from(p.refinement().Lub(p.pair(), other.pair(), joined))
}

// Widening widens componentwise.
func (p Product[L, R, F]) Widening(other Product[L, R, F]) Product[L, R, F] {
	return Product[L, R, F]{
		Left:  p.Left.Widening(other.Left),
		Right: p.Right.Widening(other.Right),
	}
}

// Glb meets components having a meet and keeps this value's ones otherwise.
func (p Product[L, R, F]) Glb(other Product[L, R, F]) Product[L, R, F] {
	res := p
	if m, ok := any(p.Left).(lattice.Meeter[L]); ok {
		res.Left = m.Glb(other.Left)
	}
	if m, ok := any(p.Right).(lattice.Meeter[R]); ok {
		res.Right = m.Glb(other.Right)
	}

	return res
}

// Narrowing narrows components having a narrowing and keeps this value's ones otherwise.
func (p Product[L, R, F]) Narrowing(other Product[L, R, F]) Product[L, R, F] {
	res := p
	if n, ok := any(p.Left).(lattice.Narrower[L]); ok {
		res.Left = n.Narrowing(other.Left)
	}
	if n, ok := any(p.Right).(lattice.Narrower[R]); ok {
		res.Right = n.Narrowing(other.Right)
	}

	return res
}

// Equal checks both components are equal.
func (p Product[L, R, F]) Equal(other Product[L, R, F]) bool {
	return p.Left.Equal(other.Left) && p.Right.Equal(other.Right)
}

func (p Product[L, R, F]) String() string {
	if r, ok := any(p.refinement()).(Renderer[L, R]); ok {
		return r.Render(p.pair())
	}

	switch {
	case p.IsTop():
		return lattice.TopString
	case p.IsBottom():
		return lattice.BottomString
	default:
		return p.Left.String() + "\n" + p.Right.String()
	}
}

// Assign assigns componentwise and lets the refinement add cross facts.
func (p Product[L, R, F]) Assign(id expr.Identifier, e expr.Expr, pp lattice.ProgramPoint, oracle lattice.Oracle) (Product[L, R, F], error) {
	left, err := p.Left.Assign(id, e, pp, oracle)
	if err != nil {
		return p, errors.Wrap(err, "assign left component")
	}
	right, err := p.Right.Assign(id, e, pp, oracle)
	if err != nil {
		return p, errors.Wrap(err, "assign right component")
	}

	after := Pair[L, R]{Left: left, Right: right}
	return p.from(p.refinement().Assign(p.pair(), after, id, e)), nil
}

// SmallStepSemantics is componentwise.
func (p Product[L, R, F]) SmallStepSemantics(e expr.Expr, pp lattice.ProgramPoint, oracle lattice.Oracle) (Product[L, R, F], error) {
	left, err := p.Left.SmallStepSemantics(e, pp, oracle)
	if err != nil {
		return p, errors.Wrap(err, "evaluate left component")
	}
	right, err := p.Right.SmallStepSemantics(e, pp, oracle)
	if err != nil {
		return p, errors.Wrap(err, "evaluate right component")
	}

	return Product[L, R, F]{Left: left, Right: right}, nil
}

// Assume is componentwise.
func (p Product[L, R, F]) Assume(e expr.Expr, src, dest lattice.ProgramPoint, oracle lattice.Oracle) (Product[L, R, F], error) {
	left, err := p.Left.Assume(e, src, dest, oracle)
	if err != nil {
		return p, errors.Wrap(err, "assume in left component")
	}
	right, err := p.Right.Assume(e, src, dest, oracle)
	if err != nil {
		return p, errors.Wrap(err, "assume in right component")
	}

	return Product[L, R, F]{Left: left, Right: right}, nil
}

// Satisfies trusts any decided answer of either component.
func (p Product[L, R, F]) Satisfies(e expr.Expr, pp lattice.ProgramPoint, oracle lattice.Oracle) (lattice.Satisfiability, error) {
	left, err := p.Left.Satisfies(e, pp, oracle)
	if err != nil {
		return lattice.Unknown, errors.Wrap(err, "check left component")
	}
	right, err := p.Right.Satisfies(e, pp, oracle)
	if err != nil {
		return lattice.Unknown, errors.Wrap(err, "check right component")
	}

	return left.Glb(right), nil
}

// ForgetIdentifier is componentwise.
func (p Product[L, R, F]) ForgetIdentifier(id expr.Identifier) Product[L, R, F] {
	return Product[L, R, F]{Left: p.Left.ForgetIdentifier(id), Right: p.Right.ForgetIdentifier(id)}
}

// ForgetIdentifiersIf is componentwise.
func (p Product[L, R, F]) ForgetIdentifiersIf(test func(expr.Identifier) bool) Product[L, R, F] {
	return Product[L, R, F]{Left: p.Left.ForgetIdentifiersIf(test), Right: p.Right.ForgetIdentifiersIf(test)}
}

// PushScope is componentwise.
func (p Product[L, R, F]) PushScope(token lattice.ScopeToken) Product[L, R, F] {
	return Product[L, R, F]{Left: p.Left.PushScope(token), Right: p.Right.PushScope(token)}
}

// PopScope is componentwise.
func (p Product[L, R, F]) PopScope(token lattice.ScopeToken) Product[L, R, F] {
	return Product[L, R, F]{Left: p.Left.PopScope(token), Right: p.Right.PopScope(token)}
}

// KnowsIdentifier asks the refinement or, failing that, either component.
func (p Product[L, R, F]) KnowsIdentifier(id expr.Identifier) bool {
	if k, ok := any(p.refinement()).(Knowledge[L, R]); ok {
		return k.KnowsIdentifier(p.pair(), id)
	}

	return p.Left.KnowsIdentifier(id) || p.Right.KnowsIdentifier(id)
}
