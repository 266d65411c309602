package bounds

import (
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

var _ lattice.Domain[State] = State{}

// Assign records id := e. Copies and shifts of a variable by a constant keep ordering
// facts, anything else only forgets what was known about id.
func (s State) Assign(id expr.Identifier, e expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (State, error) {
	if err := lattice.Check(e); err != nil {
		return s, err
	}
	if s.bottom {
		return s, nil
	}

	src, delta, ok := shift(e)
	if ok && src == id {
		// id := id + c: the old value is gone, facts below are relative to it.
		return s.ForgetIdentifier(id), nil
	}

	res := s.ForgetIdentifier(id).clone()
	if !ok {
		return build(res), nil
	}

	switch {
	case delta == 0:
		res[id] = res[src]
		for x, set := range res {
			if set.Contains(src) {
				res[x] = set.Add(id)
			}
		}
	case delta < 0:
		res[id] = res[src].Add(src)
	default:
		res[src] = res[src].Add(id)
	}

	return build(res).closed(), nil
}

// shift recognizes y, y + c, c + y and y - c with y an identifier and c an integer
// constant. It returns y and the sign of the offset added to it.
func shift(e expr.Expr) (expr.Identifier, int, bool) {
	switch v := e.(type) {
	case expr.Identifier:
		return v, 0, true
	case expr.Binary:
		id, c, ok := identAndConst(v.Left, v.Right)
		if !ok && v.Op == expr.OpAdd {
			id, c, ok = identAndConst(v.Right, v.Left)
		}
		if !ok {
			return expr.Identifier{}, 0, false
		}

		switch v.Op {
		case expr.OpAdd:
			return id, sign(c), true
		case expr.OpSub:
			return id, -sign(c), true
		}
	}

	return expr.Identifier{}, 0, false
}

func identAndConst(a, b expr.Expr) (expr.Identifier, int64, bool) {
	id, ok := a.(expr.Identifier)
	if !ok {
		return expr.Identifier{}, 0, false
	}
	c, ok := b.(expr.Constant)
	if !ok {
		return expr.Identifier{}, 0, false
	}
	n, ok := c.Int()
	if !ok {
		return expr.Identifier{}, 0, false
	}

	return id, n, true
}

func sign(n int64) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// SmallStepSemantics has nothing to record.
func (s State) SmallStepSemantics(e expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (State, error) {
	if err := lattice.Check(e); err != nil {
		return s, err
	}

	return s, nil
}

// Satisfies decides comparisons between two identifiers.
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
	x, xok := cmp.Left.(expr.Identifier)
	y, yok := cmp.Right.(expr.Identifier)
	if !xok || !yok {
		return lattice.Unknown
	}

	switch cmp.Op {
	case expr.OpLt:
		return s.less(x, y)
	case expr.OpGe:
		return s.less(x, y).Negate()
	case expr.OpGt:
		return s.less(y, x)
	case expr.OpLe:
		return s.less(y, x).Negate()
	case expr.OpEq:
		return s.equal(x, y)
	case expr.OpNe:
		return s.equal(x, y).Negate()
	default:
		return lattice.Unknown
	}
}

// less answers x < y.
func (s State) less(x, y expr.Identifier) lattice.Satisfiability {
	switch {
	case x == y:
		return lattice.NotSatisfied
	case s.bounds[x].Contains(y):
		return lattice.Satisfied
	case s.bounds[y].Contains(x):
		return lattice.NotSatisfied
	default:
		return lattice.Unknown
	}
}

func (s State) equal(x, y expr.Identifier) lattice.Satisfiability {
	switch {
	case x == y:
		return lattice.Satisfied
	case s.bounds[x].Contains(y), s.bounds[y].Contains(x):
		return lattice.NotSatisfied
	default:
		return lattice.Unknown
	}
}

// Assume records an ordering between two identifiers. A condition contradicting known
// bounds makes the state unreachable.
func (s State) Assume(e expr.Expr, _, _ lattice.ProgramPoint, _ lattice.Oracle) (State, error) {
	if err := lattice.Check(e); err != nil {
		return s, err
	}
	if s.bottom {
		return s, nil
	}

	switch s.satisfies(e) {
	case lattice.NotSatisfied:
		return Bottom(), nil
	case lattice.Satisfied:
		return s, nil
	}

	cmp, ok := expr.Comparison(e)
	if !ok {
		return s, nil
	}
	x, xok := cmp.Left.(expr.Identifier)
	y, yok := cmp.Right.(expr.Identifier)
	if !xok || !yok {
		return s, nil
	}

	res := s.clone()
	switch cmp.Op {
	case expr.OpLt:
		res[x] = res[x].Add(y)
	case expr.OpGt:
		res[y] = res[y].Add(x)
	case expr.OpLe:
		res[x] = res[x].Union(res[y])
	case expr.OpGe:
		res[y] = res[y].Union(res[x])
	case expr.OpEq:
		union := res[x].Union(res[y])
		res[x], res[y] = union, union
	default:
		return s, nil
	}

	return build(res).closed(), nil
}

// ForgetIdentifier drops every bound about the identifier.
func (s State) ForgetIdentifier(id expr.Identifier) State {
	return s.ForgetIdentifiersIf(func(x expr.Identifier) bool { return x == id })
}

// ForgetIdentifiersIf drops every bound about identifiers passing the test.
func (s State) ForgetIdentifiersIf(test func(expr.Identifier) bool) State {
	if s.bottom {
		return s
	}

	res := map[expr.Identifier]Set{}
	for id, set := range s.bounds {
		if test(id) {
			continue
		}
		res[id] = set.RemoveIf(test)
	}

	return build(res)
}

// PushScope moves every identifier into the scope.
func (s State) PushScope(token lattice.ScopeToken) State {
	return s.rename(func(id expr.Identifier) (expr.Identifier, bool) {
		return id.PushScope(string(token)), true
	})
}

// PopScope leaves the scope. Identifiers out of it are forgotten.
func (s State) PopScope(token lattice.ScopeToken) State {
	return s.rename(func(id expr.Identifier) (expr.Identifier, bool) {
		return id.PopScope(string(token))
	})
}

func (s State) rename(f func(expr.Identifier) (expr.Identifier, bool)) State {
	if s.bottom {
		return s
	}

	res := map[expr.Identifier]Set{}
	for id, set := range s.bounds {
		n, ok := f(id)
		if !ok {
			continue
		}
		res[n] = set.Map(f)
	}

	return build(res)
}

// KnowsIdentifier checks the identifier takes part in some bound.
func (s State) KnowsIdentifier(id expr.Identifier) bool {
	if _, ok := s.bounds[id]; ok {
		return true
	}

	for _, set := range s.bounds {
		if set.Contains(id) {
			return true
		}
	}

	return false
}
