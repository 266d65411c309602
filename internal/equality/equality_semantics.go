package equality

import (
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

var _ lattice.Domain[State] = State{}

// Assign records id := e. Only a bare identifier on the right side carries an equality.
// The target leaves its old class first: its old value is overwritten.
func (s State) Assign(id expr.Identifier, e expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (State, error) {
	if err := lattice.Check(e); err != nil {
		return s, err
	}
	if s.bottom {
		return s, nil
	}

	src, ok := e.(expr.Identifier)
	if ok && src == id {
		return s, nil
	}

	p := s.classes.isolate(id)
	if ok {
		p = p.merge(id, src)
	}

	return State{classes: p}, nil
}

// SmallStepSemantics has nothing to record.
func (s State) SmallStepSemantics(e expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (State, error) {
	if err := lattice.Check(e); err != nil {
		return s, err
	}

	return s, nil
}

// Satisfies decides a == b and a != b between identifiers, possibly under a logical
// negation. Anything else is unknown.
func (s State) Satisfies(e expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (lattice.Satisfiability, error) {
	if err := lattice.Check(e); err != nil {
		return lattice.Unknown, err
	}

	return s.satisfies(e), nil
}

func (s State) satisfies(e expr.Expr) lattice.Satisfiability {
	if s.bottom {
		return lattice.Unknown
	}

	cmp, ok := expr.Comparison(e)
	if !ok {
		return lattice.Unknown
	}
	a, aok := cmp.Left.(expr.Identifier)
	b, bok := cmp.Right.(expr.Identifier)
	if !aok || !bok || !s.Same(a, b) {
		return lattice.Unknown
	}

	switch cmp.Op {
	case expr.OpEq:
		return lattice.Satisfied
	case expr.OpNe:
		return lattice.NotSatisfied
	default:
		return lattice.Unknown
	}
}

// Assume makes the state unreachable when the condition is proven false. No equality is
// learned from an assumed one.
func (s State) Assume(e expr.Expr, _, _ lattice.ProgramPoint, _ lattice.Oracle) (State, error) {
	if err := lattice.Check(e); err != nil {
		return s, err
	}

	if s.satisfies(e) == lattice.NotSatisfied {
		return Bottom(), nil
	}

	return s, nil
}

// ForgetIdentifier removes the identifier from its class.
func (s State) ForgetIdentifier(id expr.Identifier) State {
	if s.bottom {
		return s
	}

	return State{classes: s.classes.isolate(id)}
}

// ForgetIdentifiersIf removes identifiers passing the test from their classes.
func (s State) ForgetIdentifiersIf(test func(expr.Identifier) bool) State {
	if s.bottom {
		return s
	}

	return State{classes: s.classes.isolateIf(test)}
}

// PushScope keeps the state as is.
func (s State) PushScope(lattice.ScopeToken) State {
	return s
}

// PopScope keeps the state as is.
func (s State) PopScope(lattice.ScopeToken) State {
	return s
}

// KnowsIdentifier checks the identifier is in some class.
func (s State) KnowsIdentifier(id expr.Identifier) bool {
	return s.classes.find(id) >= 0
}
