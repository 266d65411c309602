package congeq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirkon/absint/internal/congruence"
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

func TestProduct(t *testing.T) {
	s, err := Top().Assign(expr.Ident("b"), expr.Bin(expr.OpMul, expr.Ident("n"), expr.Int(4)), nil, nil)
	require.NoError(t, err)
	s, err = s.Assign(expr.Ident("a"), expr.Ident("b"), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, congruence.New(4, 0), s.Right.Get(expr.Ident("a")))

	sat, err := s.Satisfies(expr.Bin(expr.OpEq, expr.Ident("a"), expr.Ident("b")), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.Satisfied, sat, "equality side knows a = b")

	sat, err = s.Satisfies(expr.Bin(expr.OpEq, expr.Bin(expr.OpRem, expr.Ident("a"), expr.Int(2)), expr.Int(1)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lattice.NotSatisfied, sat, "congruence side knows a is even")

	assert.True(t, s.KnowsIdentifier(expr.Ident("a")))
	assert.False(t, s.KnowsIdentifier(expr.Ident("n")))

	c, err := Top().Assign(expr.Ident("c"), expr.Int(3), nil, nil)
	require.NoError(t, err)
	assert.True(t, c.Right.KnowsIdentifier(expr.Ident("c")))
	assert.False(t, c.KnowsIdentifier(expr.Ident("c")), "only equalities make identifiers known")
}
