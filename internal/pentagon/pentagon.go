package pentagon

import (
	"strings"

	"github.com/sirkon/absint/internal/bounds"
	"github.com/sirkon/absint/internal/combine"
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/interval"
	"github.com/sirkon/absint/internal/lattice"
)

// State is an element of the pentagon domain. Left holds bounds, Right holds intervals.
type State = combine.Product[bounds.State, interval.Environment, Refinement]

type pair = combine.Pair[bounds.State, interval.Environment]

// New creates a pentagon state out of its components.
func New(b bounds.State, iv interval.Environment) State {
	return combine.New[bounds.State, interval.Environment, Refinement](b, iv)
}

// Top returns the state knowing nothing.
func Top() State {
	return New(bounds.Top(), interval.NewEnvironment())
}

// Bottom returns the unreachable state.
func Bottom() State {
	return New(bounds.Bottom(), interval.NewEnvironment().Bottom())
}

var _ lattice.Domain[State] = State{}

// Refinement is the cross term between bounds and intervals.
type Refinement struct{}

var (
	_ combine.Refinement[bounds.State, interval.Environment] = Refinement{}
	_ combine.Renderer[bounds.State, interval.Environment]   = Refinement{}
)

// LessOrEqual needs intervals to be ordered and every bound x < y of b to hold in a:
// recorded, vacuous or proven by a's intervals.
func (Refinement) LessOrEqual(a, b pair) bool {
	if !a.Right.LessOrEqual(b.Right) {
		return false
	}

	for _, x := range b.Left.Keys() {
		for _, y := range b.Left.Get(x).Slice() {
			if !holds(a, b, x, y) {
				return false
			}
		}
	}

	return true
}

func holds(a, b pair, x, y expr.Identifier) bool {
	switch {
	case a.Left.Get(x).Contains(y):
		return true
	case a.Right.Get(x).IsBottom(), b.Right.Get(y).IsTop():
		return true
	default:
		return proves(a.Right, x, y)
	}
}

// proves checks intervals alone show x < y.
func proves(iv interval.Environment, x, y expr.Identifier) bool {
	return iv.Get(x).High().Cmp(iv.Get(y).Low()) < 0
}

// Lub takes the componentwise join and brings back bounds of either operand the
// intervals of the other one prove.
func (Refinement) Lub(a, b, joined pair) pair {
	res := joined
	res.Left = readmit(res.Left, a.Left, b.Right)
	res.Left = readmit(res.Left, b.Left, a.Right)

	return res
}

func readmit(joined, original bounds.State, certificate interval.Environment) bounds.State {
	for _, x := range original.Keys() {
		set := joined.Get(x)
		for _, y := range original.Get(x).Slice() {
			if !set.Contains(y) && proves(certificate, x, y) {
				set = set.Add(y)
			}
		}
		if !set.Equal(joined.Get(x)) {
			joined = joined.With(x, set)
		}
	}

	return joined
}

// Assign drops the bounds the bounds component derived from an addition or subtraction
// the intervals cannot keep from wrapping. Then it handles id := x - y over identifiers:
// x > y makes id positive, a positive y makes id smaller than x.
//
// Both facts are read from the state before the assignment, so they still hold when id
// is x or y.
func (Refinement) Assign(before, after pair, id expr.Identifier, e expr.Expr) pair {
	b, ok := e.(expr.Binary)
	if !ok || (b.Op != expr.OpAdd && b.Op != expr.OpSub) {
		return after
	}

	res := after
	if wraps(before.Right, b) {
		res.Left = before.Left.ForgetIdentifier(id)
		return res
	}

	x, xok := b.Left.(expr.Identifier)
	y, yok := b.Right.(expr.Identifier)
	if b.Op != expr.OpSub || !xok || !yok {
		return res
	}

	if before.Left.Get(y).Contains(x) {
		res.Right = res.Right.Set(id, res.Right.Get(id).Glb(interval.AtLeast(1)))
	}

	low, ok := before.Right.Get(y).Low().Int()
	switch {
	case !ok || low <= 0:
		res.Left = res.Left.With(id, bounds.Set{})
	case id == x:
		res.Left = res.Left.With(id, before.Left.Get(x))
	default:
		res.Left = res.Left.With(id, res.Left.Get(x).Add(x))
	}

	return res
}

// wraps checks if b may overflow for values the intervals allow.
func wraps(iv interval.Environment, b expr.Binary) bool {
	left, err := iv.Eval(b.Left)
	if err != nil {
		return true
	}
	right, err := iv.Eval(b.Right)
	if err != nil {
		return true
	}

	return interval.Wraps(b.Op, left, right)
}

// Render prints a line per tracked identifier.
func (Refinement) Render(p pair) string {
	switch {
	case p.Left.IsTop() && p.Right.IsTop():
		return lattice.TopString
	case p.Left.IsBottom() && p.Right.IsBottom():
		return lattice.BottomString
	}

	ids := bounds.NewSet(append(p.Left.Keys(), p.Right.Keys()...)...)

	var buf strings.Builder
	for i, id := range ids.Slice() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(id.String())
		buf.WriteString(": ")
		buf.WriteString(p.Right.Get(id).String())
		buf.WriteString(", ")
		buf.WriteString(p.Left.Get(id).String())
	}

	return buf.String()
}
