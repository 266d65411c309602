// Package congeq pairs the equality domain with congruences of variables.
package congeq

import (
	"github.com/sirkon/absint/internal/combine"
	"github.com/sirkon/absint/internal/congruence"
	"github.com/sirkon/absint/internal/equality"
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// State is an element of the product. Left holds equalities, Right holds congruences.
type State = combine.Product[equality.State, congruence.Environment, Refinement]

// Refinement adds no cross facts. Only the equality side decides which identifiers are
// known.
type Refinement struct {
	combine.Plain[equality.State, congruence.Environment]
}

var (
	_ lattice.Domain[State]                                      = State{}
	_ combine.Knowledge[equality.State, congruence.Environment]  = Refinement{}
	_ combine.Refinement[equality.State, congruence.Environment] = Refinement{}
)

// KnowsIdentifier asks the equality side.
func (Refinement) KnowsIdentifier(p combine.Pair[equality.State, congruence.Environment], id expr.Identifier) bool {
	return p.Left.KnowsIdentifier(id)
}

// Top returns the state knowing nothing.
func Top() State {
	return combine.New[equality.State, congruence.Environment, Refinement](equality.Top(), congruence.NewEnvironment())
}
