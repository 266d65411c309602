package expr

import (
	"github.com/sirkon/errors"
)

// Expr is implemented by every expression shape.
type Expr interface {
	isExpr()
	String() string
}

// Validate checks the expression tree has no missing operands.
func Validate(e Expr) error {
	switch v := e.(type) {
	case nil:
		return errors.New("missing expression")
	case Constant, Identifier:
		return nil
	case Unary:
		if err := Validate(v.Operand); err != nil {
			return errors.Wrapf(err, "operand of %s", v.Op)
		}
		return nil
	case Binary:
		if err := Validate(v.Left); err != nil {
			return errors.Wrapf(err, "left operand of %s", v.Op)
		}
		if err := Validate(v.Right); err != nil {
			return errors.Wrapf(err, "right operand of %s", v.Op)
		}
		return nil
	default:
		return errors.Newf("unsupported expression type %T", e)
	}
}

// StripNegation unwraps a single logical negation. The flag reports whether one was there.
func StripNegation(e Expr) (Expr, bool) {
	if u, ok := e.(Unary); ok && u.Op == OpNot {
		return u.Operand, true
	}

	return e, false
}

// Comparison splits a comparison, pushing a single logical negation into the operator.
// The operator returned is always a comparison one.
func Comparison(e Expr) (Binary, bool) {
	inner, negated := StripNegation(e)
	b, ok := inner.(Binary)
	if !ok || !b.Op.IsComparison() {
		return Binary{}, false
	}

	if negated {
		b.Op = b.Op.Negate()
	}

	return b, true
}
