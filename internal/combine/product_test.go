package combine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirkon/absint/internal/combine"
	"github.com/sirkon/absint/internal/congruence"
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/interval"
	"github.com/sirkon/absint/internal/lattice"
)

type (
	plain   = combine.Plain[congruence.Environment, interval.Environment]
	product = combine.Product[congruence.Environment, interval.Environment, plain]
)

var _ lattice.Domain[product] = product{}

func TestProductSatisfiesTrustsEitherSide(t *testing.T) {
	p := combine.New[congruence.Environment, interval.Environment, plain](
		congruence.NewEnvironment(),
		interval.NewEnvironment(),
	)

	p, err := p.Assign(expr.Ident("x"), expr.Bin(expr.OpMul, expr.Ident("n"), expr.Int(2)), nil, nil)
	require.NoError(t, err)
	p, err = p.Assume(expr.Bin(expr.OpGe, expr.Ident("x"), expr.Int(0)), nil, nil, nil)
	require.NoError(t, err)

	// Parity is known on the left, sign on the right.
	sat, err := p.Satisfies(expr.Bin(expr.OpEq, expr.Bin(expr.OpRem, expr.Ident("x"), expr.Int(2)), expr.Int(1)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.NotSatisfied, sat)

	sat, err = p.Satisfies(expr.Bin(expr.OpLt, expr.Ident("x"), expr.Int(0)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.NotSatisfied, sat)

	sat, err = p.Satisfies(expr.Bin(expr.OpLt, expr.Ident("x"), expr.Int(10)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.Unknown, sat)
}

func TestProductLattice(t *testing.T) {
	var p product
	top := p.Top()
	assert.True(t, top.IsTop())
	assert.Equal(t, lattice.TopString, top.String())
	assert.True(t, p.Bottom().IsBottom())
	assert.Equal(t, lattice.BottomString, p.Bottom().String())

	half := combine.New[congruence.Environment, interval.Environment, plain](
		congruence.NewEnvironment(),
		interval.NewEnvironment().Bottom(),
	)
	assert.False(t, half.IsBottom(), "a single bottom component does not make the product bottom")
	assert.True(t, lattice.Unreachable(half), "yet it describes no state")
	assert.False(t, lattice.Unreachable(top))
	assert.False(t, half.IsTop())

	a, err := top.Assign(expr.Ident("x"), expr.Int(1), nil, nil)
	require.NoError(t, err)
	b, err := top.Assign(expr.Ident("x"), expr.Int(5), nil, nil)
	require.NoError(t, err)

	lub := a.Lub(b)
	assert.True(t, a.LessOrEqual(lub))
	assert.True(t, b.LessOrEqual(lub))
	assert.False(t, lub.LessOrEqual(a))
	assert.Equal(t, "x: 4Z+1\nx: [1, 5]", lub.String())

	assert.True(t, a.Glb(b).Left.IsBottom())
	assert.True(t, a.Glb(b).Right.IsBottom())

	w := a.Widening(lub)
	assert.Equal(t, "x: 4Z+1\nx: [1, +Inf]", w.String())
	assert.Equal(t, "x: 4Z+1\nx: [1, 5]", w.Narrowing(lub).String())

	assert.True(t, lub.KnowsIdentifier(expr.Ident("x")))
	forgotten := lub.ForgetIdentifier(expr.Ident("x"))
	assert.False(t, forgotten.KnowsIdentifier(expr.Ident("x")))
	assert.True(t, forgotten.Equal(forgotten.ForgetIdentifier(expr.Ident("x"))))
}

func TestProductErrors(t *testing.T) {
	var p product
	_, err := p.Assign(expr.Ident("x"), nil, nil, nil)
	require.ErrorIs(t, err, lattice.ErrDomainComputation)
	_, err = p.Satisfies(expr.Not(nil), nil, nil)
	require.ErrorIs(t, err, lattice.ErrDomainComputation)
}
