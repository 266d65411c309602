package nonrel

import (
	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// Eval computes the value of the expression in this environment.
func (e Environment[V]) Eval(x expr.Expr) (V, error) {
	if err := lattice.Check(x); err != nil {
		return zero[V](), err
	}

	return e.eval(x), nil
}

func (e Environment[V]) eval(x expr.Expr) V {
	z := zero[V]()
	if e.bottom {
		return z.Bottom()
	}

	switch v := x.(type) {
	case expr.Constant:
		return z.EvalConstant(v)
	case expr.Identifier:
		return e.Get(v)
	case expr.Unary:
		return z.EvalUnary(v.Op, e.eval(v.Operand))
	case expr.Binary:
		return z.EvalBinary(v.Op, e.eval(v.Left), e.eval(v.Right))
	default:
		return z.Top()
	}
}

// Assign binds the identifier to the value of the expression.
func (e Environment[V]) Assign(id expr.Identifier, x expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (Environment[V], error) {
	if err := lattice.Check(x); err != nil {
		return e, err
	}
	if e.bottom {
		return e, nil
	}

	return e.Set(id, e.eval(x)), nil
}

// SmallStepSemantics has nothing to record for a non-relational state.
func (e Environment[V]) SmallStepSemantics(x expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (Environment[V], error) {
	if err := lattice.Check(x); err != nil {
		return e, err
	}

	return e, nil
}

// Satisfies decides comparisons, possibly under a logical negation.
func (e Environment[V]) Satisfies(x expr.Expr, _ lattice.ProgramPoint, _ lattice.Oracle) (lattice.Satisfiability, error) {
	if err := lattice.Check(x); err != nil {
		return lattice.Unknown, err
	}

	return e.satisfies(x), nil
}

func (e Environment[V]) satisfies(x expr.Expr) lattice.Satisfiability {
	if e.bottom {
		return lattice.Unknown
	}

	switch v := x.(type) {
	case expr.Unary:
		if v.Op == expr.OpNot {
			return e.satisfies(v.Operand).Negate()
		}
	case expr.Binary:
		if v.Op.IsComparison() {
			return zero[V]().SatisfiesBinary(v.Op, e.eval(v.Left), e.eval(v.Right))
		}
	}

	return lattice.Unknown
}

// Assume restricts the state to where the condition holds.
func (e Environment[V]) Assume(x expr.Expr, _, _ lattice.ProgramPoint, _ lattice.Oracle) (Environment[V], error) {
	if err := lattice.Check(x); err != nil {
		return e, err
	}
	if e.bottom {
		return e, nil
	}

	switch e.satisfies(x) {
	case lattice.NotSatisfied:
		return Bottom[V](), nil
	case lattice.Satisfied:
		return e, nil
	}

	cmp, ok := expr.Comparison(x)
	if !ok {
		return e, nil
	}
	refiner, ok := any(zero[V]()).(Refiner[V])
	if !ok {
		return e, nil
	}

	res := e
	if id, ok := cmp.Left.(expr.Identifier); ok {
		res = res.Set(id, refiner.Refine(cmp.Op, res.Get(id), res.eval(cmp.Right)))
	}
	if id, ok := cmp.Right.(expr.Identifier); ok {
		res = res.Set(id, refiner.Refine(cmp.Op.Flip(), res.Get(id), res.eval(cmp.Left)))
	}

	return res, nil
}

// ForgetIdentifier drops everything known about the identifier.
func (e Environment[V]) ForgetIdentifier(id expr.Identifier) Environment[V] {
	return e.ForgetIdentifiersIf(func(x expr.Identifier) bool { return x == id })
}

// ForgetIdentifiersIf drops everything known about identifiers passing the test.
func (e Environment[V]) ForgetIdentifiersIf(test func(expr.Identifier) bool) Environment[V] {
	if e.bottom {
		return e
	}

	values := map[expr.Identifier]V{}
	for id, v := range e.values {
		if test(id) {
			continue
		}
		values[id] = v
	}

	return Environment[V]{values: values}
}

// PushScope moves every identifier into the scope.
func (e Environment[V]) PushScope(token lattice.ScopeToken) Environment[V] {
	if e.bottom {
		return e
	}

	values := make(map[expr.Identifier]V, len(e.values))
	for id, v := range e.values {
		values[id.PushScope(string(token))] = v
	}

	return Environment[V]{values: values}
}

// PopScope leaves the scope. Identifiers out of it are forgotten.
func (e Environment[V]) PopScope(token lattice.ScopeToken) Environment[V] {
	if e.bottom {
		return e
	}

	values := make(map[expr.Identifier]V, len(e.values))
	for id, v := range e.values {
		popped, ok := id.PopScope(string(token))
		if !ok {
			continue
		}
		values[popped] = v
	}

	return Environment[V]{values: values}
}

// KnowsIdentifier checks if the identifier has an entry.
func (e Environment[V]) KnowsIdentifier(id expr.Identifier) bool {
	_, ok := e.values[id]
	return ok
}
