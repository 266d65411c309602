package congruence

import (
	"math"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// EvalConstant maps integer constants to singleton classes, anything else to Top.
func (Value) EvalConstant(c expr.Constant) Value {
	n, ok := c.Int()
	if !ok {
		return Top()
	}

	return Singleton(n)
}

// EvalUnary computes numeric negation. Other operators give Top.
func (Value) EvalUnary(op expr.Operator, arg Value) Value {
	if arg.IsBottom() {
		return Bottom()
	}

	switch op {
	case expr.OpNegate:
		m, r := arg.pair()
		if r == math.MinInt64 {
			return Top()
		}
		return New(m, -r)
	default:
		return Top()
	}
}

// EvalBinary computes arithmetic over classes.
func (Value) EvalBinary(op expr.Operator, left, right Value) Value {
	if left.IsBottom() || right.IsBottom() {
		return Bottom()
	}

	am, ar := left.pair()
	bm, br := right.pair()
	switch op {
	case expr.OpAdd:
		r, ok := add(ar, br)
		if !ok {
			return Top()
		}
		return New(gcd(am, bm), r)

	case expr.OpSub:
		r, ok := sub(ar, br)
		if !ok {
			return Top()
		}
		return New(gcd(am, bm), r)

	case expr.OpMul:
		mm, ok1 := mul(am, bm)
		mr, ok2 := mul(am, br)
		rm, ok3 := mul(bm, ar)
		r, ok4 := mul(ar, br)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Top()
		}
		return New(gcd(mm, gcd(mr, rm)), r)

	case expr.OpDiv:
		if right.isZero() {
			return Bottom()
		}
		if bm != 0 || !divides(br, am) || !divides(br, ar) {
			return Top()
		}
		if br == -1 && ar == math.MinInt64 {
			return Top()
		}
		return New(am/br, ar/br)

	case expr.OpRem:
		if right.isZero() {
			return Bottom()
		}
		if bm != 0 || !divides(br, am) {
			return Top()
		}
		if am == 0 || ar%br == 0 {
			// Either a constant or an exact multiple of the divisor.
			return Singleton(ar % br)
		}
		// A negative dividend keeps its sign under %, both outcomes share the class
		// modulo the divisor.
		return New(br, ar%br)

	default:
		return Top()
	}
}

// SatisfiesBinary decides comparisons between two classes.
func (Value) SatisfiesBinary(op expr.Operator, left, right Value) lattice.Satisfiability {
	if left.IsBottom() || right.IsBottom() {
		return lattice.Unknown
	}

	switch op {
	case expr.OpEq:
		return left.satisfiesEq(right)
	case expr.OpNe:
		return left.satisfiesEq(right).Negate()
	}

	a, aok := left.Constant()
	b, bok := right.Constant()
	if !aok || !bok {
		return lattice.Unknown
	}

	switch op {
	case expr.OpGt:
		return lattice.FromBool(a > b)
	case expr.OpGe:
		return lattice.FromBool(a >= b)
	case expr.OpLt:
		return lattice.FromBool(a < b)
	case expr.OpLe:
		return lattice.FromBool(a <= b)
	default:
		return lattice.Unknown
	}
}

// Refine narrows current knowing current op other holds. Only equality carries
// information for congruences.
func (Value) Refine(op expr.Operator, current, other Value) Value {
	if op != expr.OpEq || other.IsBottom() {
		return current
	}

	return current.Glb(other)
}

func (v Value) satisfiesEq(other Value) lattice.Satisfiability {
	if v.Glb(other).IsBottom() {
		return lattice.NotSatisfied
	}
	// Mutual inclusion proves equality for singletons only: two variables of the same
	// wider class may still differ.
	a, aok := v.Constant()
	b, bok := other.Constant()
	if aok && bok && a == b {
		return lattice.Satisfied
	}

	return lattice.Unknown
}

func (v Value) isZero() bool {
	return v.kind == kindValue && v.modulus == 0 && v.residue == 0
}
