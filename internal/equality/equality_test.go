package equality

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

func ids(names ...string) []expr.Identifier {
	res := make([]expr.Identifier, len(names))
	for i, n := range names {
		res[i] = expr.Ident(n)
	}

	return res
}

func assign(t *testing.T, s State, name string, e expr.Expr) State {
	t.Helper()

	res, err := s.Assign(expr.Ident(name), e, nil, nil)
	require.NoError(t, err)
	return res
}

func satisfies(t *testing.T, s State, e expr.Expr) lattice.Satisfiability {
	t.Helper()

	res, err := s.Satisfies(e, nil, nil)
	require.NoError(t, err)
	return res
}

func eq(a, b string) expr.Binary {
	return expr.Bin(expr.OpEq, expr.Ident(a), expr.Ident(b))
}

func ne(a, b string) expr.Binary {
	return expr.Bin(expr.OpNe, expr.Ident(a), expr.Ident(b))
}

func TestAssignTransitivity(t *testing.T) {
	s := assign(t, Top(), "a", expr.Ident("b"))
	s = assign(t, s, "c", expr.Ident("b"))

	assert.Equal(t, lattice.Satisfied, satisfies(t, s, eq("a", "c")))
	assert.Equal(t, lattice.NotSatisfied, satisfies(t, s, ne("a", "c")))
	assert.Equal(t, lattice.NotSatisfied, satisfies(t, s, expr.Not(eq("a", "c"))))
	assert.Equal(t, lattice.Satisfied, satisfies(t, s, expr.Not(ne("a", "c"))))
	assert.Equal(t, lattice.Unknown, satisfies(t, s, eq("a", "d")))
	assert.Equal(t, lattice.Unknown, satisfies(t, s, expr.Bin(expr.OpLt, expr.Ident("a"), expr.Ident("c"))))
	assert.Equal(t, lattice.Unknown, satisfies(t, s, expr.Bin(expr.OpEq, expr.Ident("a"), expr.Int(1))))
	assert.Equal(t, "a = b = c", s.String())
}

func TestAssignOverwrites(t *testing.T) {
	s := FromClasses(ids("a", "b", "c"))

	res := assign(t, s, "a", expr.Int(5))
	assert.Equal(t, lattice.Unknown, satisfies(t, res, eq("a", "b")))
	assert.Equal(t, lattice.Satisfied, satisfies(t, res, eq("b", "c")))

	res = assign(t, s, "a", expr.Ident("d"))
	assert.Equal(t, lattice.Unknown, satisfies(t, res, eq("a", "b")))
	assert.Equal(t, lattice.Satisfied, satisfies(t, res, eq("a", "d")))
	assert.Equal(t, "a = d, b = c", res.String())

	res = assign(t, s, "a", expr.Ident("a"))
	assert.True(t, res.Equal(s))
}

func TestLubDropsOneSidedEqualities(t *testing.T) {
	s1 := FromClasses(ids("a", "b"))
	s2 := FromClasses(ids("a", "c"))

	lub := s1.Lub(s2)
	assert.Equal(t, lattice.Unknown, satisfies(t, lub, eq("a", "b")))
	assert.Equal(t, lattice.Unknown, satisfies(t, lub, eq("a", "c")))
	assert.True(t, lub.IsTop())

	s3 := FromClasses(ids("a", "b", "c"), ids("x", "y"))
	s4 := FromClasses(ids("a", "b", "d"), ids("x", "y", "z"))
	assert.Equal(t, "a = b, x = y", s3.Lub(s4).String())
	assert.True(t, s3.LessOrEqual(s3.Lub(s4)))
	assert.True(t, s4.LessOrEqual(s3.Lub(s4)))
}

func TestOrder(t *testing.T) {
	fine := FromClasses(ids("a", "b", "c"))
	coarse := FromClasses(ids("a", "b"))

	assert.True(t, fine.LessOrEqual(coarse))
	assert.False(t, coarse.LessOrEqual(fine))
	assert.True(t, fine.LessOrEqual(Top()))
	assert.False(t, Top().LessOrEqual(fine))
	assert.True(t, Bottom().LessOrEqual(Top()))
	assert.False(t, Top().LessOrEqual(Bottom()))
}

func TestGlb(t *testing.T) {
	s := FromClasses(ids("a", "b")).Glb(FromClasses(ids("b", "c"), ids("x", "y")))
	assert.Equal(t, "a = b = c, x = y", s.String())
	assert.True(t, Top().Glb(Bottom()).IsBottom())
}

func TestAssume(t *testing.T) {
	s := FromClasses(ids("a", "b"))

	res, err := s.Assume(ne("a", "b"), nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.IsBottom())

	res, err = s.Assume(eq("a", "c"), nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Equal(s), "no equality must be learned from an assumption")
}

func TestTopBottom(t *testing.T) {
	assert.True(t, Top().IsTop())
	assert.False(t, Top().IsBottom())
	assert.True(t, Bottom().IsBottom())
	assert.False(t, Bottom().IsTop())
	assert.False(t, Top().Equal(Bottom()))
	assert.Equal(t, lattice.BottomString, Bottom().String())
	assert.Equal(t, "", Top().String())
}

func TestForget(t *testing.T) {
	s := FromClasses(ids("a", "b", "c"), ids("x", "y"))

	once := s.ForgetIdentifier(expr.Ident("a"))
	assert.True(t, once.Equal(once.ForgetIdentifier(expr.Ident("a"))))
	assert.False(t, once.KnowsIdentifier(expr.Ident("a")))
	assert.Equal(t, "b = c, x = y", once.String())

	res := s.ForgetIdentifiersIf(func(id expr.Identifier) bool { return id.Name == "x" || id.Name == "b" })
	assert.Equal(t, "a = c", res.String())

	assert.True(t, s.PushScope("f").Equal(s))
	assert.True(t, s.PopScope("f").Equal(s))
}

func TestMalformed(t *testing.T) {
	_, err := Top().Assume(expr.Not(nil), nil, nil, nil)
	require.ErrorIs(t, err, lattice.ErrDomainComputation)
}

func genState() *rapid.Generator[State] {
	return rapid.Custom(func(t *rapid.T) State {
		if rapid.IntRange(0, 9).Draw(t, "bottom") == 0 {
			return Bottom()
		}

		s := Top()
		n := rapid.IntRange(0, 6).Draw(t, "merges")
		for i := 0; i < n; i++ {
			a := fmt.Sprintf("v%d", rapid.IntRange(0, 5).Draw(t, "a"))
			b := fmt.Sprintf("v%d", rapid.IntRange(0, 5).Draw(t, "b"))
			s = s.Glb(FromClasses(ids(a, b)))
		}

		return s
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
		if a.LessOrEqual(b) && b.LessOrEqual(a) && !a.Equal(b) {
			t.Fatalf("%q and %q are mutually ordered but differ", a, b)
		}
		if a.LessOrEqual(b) && b.LessOrEqual(c) && !a.LessOrEqual(c) {
			t.Fatalf("%q ≤ %q ≤ %q is not transitive", a, b, c)
		}
		if lub := a.Lub(b); !a.LessOrEqual(lub) || !b.LessOrEqual(lub) {
			t.Fatalf("%q is not an upper bound of %q and %q", lub, a, b)
		}
		if glb := a.Glb(b); !glb.LessOrEqual(a) || !glb.LessOrEqual(b) {
			t.Fatalf("%q is not a lower bound of %q and %q", glb, a, b)
		}

		id := expr.Ident(fmt.Sprintf("v%d", rapid.IntRange(0, 5).Draw(t, "forget")))
		once := a.ForgetIdentifier(id)
		if !once.Equal(once.ForgetIdentifier(id)) {
			t.Fatalf("forgetting %s in %q is not idempotent", id, a)
		}
	})
}
