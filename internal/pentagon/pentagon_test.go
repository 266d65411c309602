package pentagon

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sirkon/absint/internal/bounds"
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/interval"
	"github.com/sirkon/absint/internal/lattice"
)

var (
	x = expr.Ident("x")
	y = expr.Ident("y")
	r = expr.Ident("r")
)

func intervals(values map[expr.Identifier]interval.Value) interval.Environment {
	env := interval.NewEnvironment()
	for id, v := range values {
		env = env.Set(id, v)
	}

	return env
}

func TestAssignDifferenceOfOrderedVariables(t *testing.T) {
	// y < x, y ≥ 1 and x ≥ 2.
	s := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{y: {x}}),
		intervals(map[expr.Identifier]interval.Value{x: interval.AtLeast(2), y: interval.New(1, 10)}),
	)

	res, err := s.Assign(r, expr.Bin(expr.OpSub, x, y), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, interval.AtLeast(1), res.Right.Get(r), "r = x - y with x > y must be positive")
	assert.Equal(t, "{x}", res.Left.Get(r).String(), "r = x - y with y > 0 must be below x")

	sat, err := res.Satisfies(expr.Bin(expr.OpLt, r, x), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.Satisfied, sat)
	sat, err = res.Satisfies(expr.Bin(expr.OpLe, r, expr.Int(0)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.NotSatisfied, sat)
}

func TestAssignDifferenceWithoutFacts(t *testing.T) {
	s := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{r: {x}}),
		intervals(map[expr.Identifier]interval.Value{y: interval.New(-1, 10)}),
	)

	res, err := s.Assign(r, expr.Bin(expr.OpSub, x, y), nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Right.Get(r).IsTop())
	assert.Equal(t, 0, res.Left.Get(r).Len(), "no bound survives a possibly non-positive y")
}

func TestAssignDifferenceIntoMinuend(t *testing.T) {
	z := expr.Ident("z")
	s := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{x: {z}}),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 50), y: interval.New(2, 3)}),
	)

	res, err := s.Assign(x, expr.Bin(expr.OpSub, x, y), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "{z}", res.Left.Get(x).String())
}

func TestAssignDifferenceIntoSubtrahend(t *testing.T) {
	// y := x - y reads y < x and y ≥ 1 of the old y.
	s := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{y: {x}}),
		intervals(map[expr.Identifier]interval.Value{x: interval.AtLeast(0), y: interval.New(1, 10)}),
	)

	res, err := s.Assign(y, expr.Bin(expr.OpSub, x, y), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, interval.AtLeast(1), res.Right.Get(y))
	assert.Equal(t, "{x}", res.Left.Get(y).String())

	sat, err := res.Satisfies(expr.Bin(expr.OpLt, y, x), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.Satisfied, sat)
}

func TestAssignWrappingArithmetic(t *testing.T) {
	satisfies := func(t *testing.T, s State, e expr.Expr) lattice.Satisfiability {
		t.Helper()
		sat, err := s.Satisfies(e, nil, nil)
		require.NoError(t, err)
		return sat
	}

	t.Run("increment-of-max", func(t *testing.T) {
		s := New(bounds.Top(), intervals(map[expr.Identifier]interval.Value{y: interval.Singleton(math.MaxInt64)}))

		res, err := s.Assign(x, expr.Bin(expr.OpAdd, y, expr.Int(1)), nil, nil)
		require.NoError(t, err)
		assert.True(t, res.Right.Get(x).IsTop())
		assert.False(t, res.Left.Get(y).Contains(x))
		assert.Equal(t, lattice.Unknown, satisfies(t, res, expr.Bin(expr.OpGt, x, y)))
	})

	t.Run("increment-of-unbounded", func(t *testing.T) {
		res, err := Top().Assign(x, expr.Bin(expr.OpAdd, expr.Int(1), y), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, lattice.Unknown, satisfies(t, res, expr.Bin(expr.OpGt, x, y)))
	})

	t.Run("increment-below-max", func(t *testing.T) {
		s := New(bounds.Top(), intervals(map[expr.Identifier]interval.Value{y: interval.AtMost(99)}))

		res, err := s.Assign(x, expr.Bin(expr.OpAdd, y, expr.Int(1)), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, lattice.Satisfied, satisfies(t, res, expr.Bin(expr.OpGt, x, y)))
	})

	t.Run("decrement-of-min", func(t *testing.T) {
		s := New(bounds.Top(), intervals(map[expr.Identifier]interval.Value{y: interval.Singleton(math.MinInt64)}))

		res, err := s.Assign(x, expr.Bin(expr.OpSub, y, expr.Int(1)), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, lattice.Unknown, satisfies(t, res, expr.Bin(expr.OpLt, x, y)))
	})

	t.Run("difference-below-min", func(t *testing.T) {
		s := New(bounds.Top(), intervals(map[expr.Identifier]interval.Value{
			x: interval.Singleton(math.MinInt64),
			y: interval.Singleton(1),
		}))

		res, err := s.Assign(r, expr.Bin(expr.OpSub, x, y), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Left.Get(r).Len())
		assert.Equal(t, lattice.Unknown, satisfies(t, res, expr.Bin(expr.OpLt, r, x)))
	})

	t.Run("difference-above-max", func(t *testing.T) {
		s := New(
			bounds.FromMap(map[expr.Identifier][]expr.Identifier{y: {x}}),
			intervals(map[expr.Identifier]interval.Value{
				x: interval.Singleton(math.MaxInt64),
				y: interval.Singleton(-1),
			}),
		)

		res, err := s.Assign(r, expr.Bin(expr.OpSub, x, y), nil, nil)
		require.NoError(t, err)
		assert.True(t, res.Right.Get(r).IsTop())
		assert.Equal(t, lattice.Unknown, satisfies(t, res, expr.Bin(expr.OpGt, r, expr.Int(0))))
	})
}

func TestJoinReadmitsProvenBounds(t *testing.T) {
	this := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{x: {y}}),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 5), y: interval.New(10, 20)}),
	)
	other := New(
		bounds.Top(),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 3), y: interval.New(4, 8)}),
	)

	for name, joined := range map[string]State{"this-other": this.Lub(other), "other-this": other.Lub(this)} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, joined.Left.Get(x).Contains(y), "x < y holds on both sides")
			assert.Equal(t, interval.New(0, 5), joined.Right.Get(x))
			assert.Equal(t, interval.New(4, 20), joined.Right.Get(y))
			assert.True(t, this.LessOrEqual(joined))
			assert.True(t, other.LessOrEqual(joined))
		})
	}

	unproven := New(
		bounds.Top(),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 5), y: interval.New(4, 8)}),
	)
	assert.False(t, this.Lub(unproven).Left.Get(x).Contains(y))
}

func TestOrder(t *testing.T) {
	withBound := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{x: {y}}),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 5), y: interval.New(0, 20)}),
	)
	proven := New(
		bounds.Top(),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 3), y: interval.New(4, 8)}),
	)
	unproven := New(
		bounds.Top(),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 5), y: interval.New(4, 8)}),
	)
	unbounded := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{x: {y}}),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 5)}),
	)

	assert.True(t, proven.LessOrEqual(withBound), "intervals prove x < y")
	assert.False(t, unproven.LessOrEqual(withBound))
	assert.True(t, withBound.LessOrEqual(withBound))
	assert.True(t, unproven.LessOrEqual(unbounded), "y is unconstrained in the bigger state")
	assert.True(t, withBound.LessOrEqual(Top()))
	assert.False(t, Top().LessOrEqual(withBound))
	assert.True(t, Bottom().LessOrEqual(withBound))
}

func TestSingleBottomComponentIsNotBottom(t *testing.T) {
	s := New(bounds.Bottom(), interval.NewEnvironment())
	assert.False(t, s.IsBottom())
	assert.False(t, s.IsTop())

	s = New(bounds.Top(), interval.NewEnvironment().Bottom())
	assert.False(t, s.IsBottom())
	assert.False(t, s.IsTop())
	assert.True(t, lattice.Unreachable(s), "the driver still sees no concrete state")

	assert.True(t, Bottom().IsBottom())
	assert.True(t, Top().IsTop())
}

func TestRender(t *testing.T) {
	assert.Equal(t, lattice.TopString, Top().String())
	assert.Equal(t, lattice.BottomString, Bottom().String())

	s := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{x: {y}}),
		intervals(map[expr.Identifier]interval.Value{y: interval.AtLeast(1)}),
	)
	assert.Equal(t, "x: [-Inf, +Inf], {y}\ny: [1, +Inf], {}", s.String())
}

func TestDelegation(t *testing.T) {
	s := New(
		bounds.FromMap(map[expr.Identifier][]expr.Identifier{x: {y}}),
		intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 5), y: interval.New(1, 9)}),
	)

	once := s.ForgetIdentifier(x)
	assert.True(t, once.Equal(once.ForgetIdentifier(x)))
	assert.False(t, once.KnowsIdentifier(x))
	assert.True(t, once.KnowsIdentifier(y))

	popped := s.PushScope("f").PopScope("f")
	assert.True(t, popped.Equal(s))

	res, err := s.SmallStepSemantics(expr.Bin(expr.OpAdd, x, y), nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Equal(s))

	res, err = s.Assume(expr.Bin(expr.OpGt, x, y), nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Left.IsBottom())

	widened := s.Widening(s.Lub(New(bounds.Top(), intervals(map[expr.Identifier]interval.Value{x: interval.New(0, 6)}))))
	assert.Equal(t, interval.AtLeast(0), widened.Right.Get(x))
	assert.Equal(t, 0, widened.Left.Get(x).Len())
}

func genState() *rapid.Generator[State] {
	names := []expr.Identifier{x, y, r}
	return rapid.Custom(func(t *rapid.T) State {
		iv := interval.NewEnvironment()
		for _, id := range names {
			if rapid.Bool().Draw(t, "has-"+id.Name) {
				low := rapid.Int64Range(-10, 10).Draw(t, "low-"+id.Name)
				iv = iv.Set(id, interval.New(low, low+rapid.Int64Range(0, 10).Draw(t, "width-"+id.Name)))
			}
		}

		facts := map[expr.Identifier][]expr.Identifier{}
		for i := range names {
			for j := i + 1; j < len(names); j++ {
				if rapid.Bool().Draw(t, fmt.Sprintf("bound-%d-%d", i, j)) {
					facts[names[i]] = append(facts[names[i]], names[j])
				}
			}
		}

		return New(bounds.FromMap(facts), iv)
	})
}

func TestPropertyLattice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genState().Draw(t, "a")
		b := genState().Draw(t, "b")
		c := genState().Draw(t, "c")

		if !a.LessOrEqual(a) {
			t.Fatalf("%q ≤ %q must hold", a, a)
		}
		if a.LessOrEqual(b) && b.LessOrEqual(c) && !a.LessOrEqual(c) {
			t.Fatalf("order is not transitive on %q, %q, %q", a, b, c)
		}
		if lub := a.Lub(b); !a.LessOrEqual(lub) || !b.LessOrEqual(lub) {
			t.Fatalf("%q is not an upper bound of %q and %q", lub, a, b)
		}
		if w := a.Widening(b); !a.LessOrEqual(w) || !b.LessOrEqual(w) {
			t.Fatalf("widening %q is not an upper bound of %q and %q", w, a, b)
		}

		once := a.ForgetIdentifier(y)
		if !once.Equal(once.ForgetIdentifier(y)) {
			t.Fatalf("forgetting y in %q is not idempotent", a)
		}
	})
}

// Random triples rarely come ordered, chains built by joins do.
func TestPropertyOrderTransitiveOnChains(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genState().Draw(t, "a")
		b := a.Lub(genState().Draw(t, "b"))
		c := b.Lub(genState().Draw(t, "c"))

		if !a.LessOrEqual(b) || !b.LessOrEqual(c) {
			t.Fatalf("joins must grow: %q, %q, %q", a, b, c)
		}
		if !a.LessOrEqual(c) {
			t.Fatalf("order is not transitive on %q, %q, %q", a, b, c)
		}
	})
}
