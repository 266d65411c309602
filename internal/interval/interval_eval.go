package interval

import (
	"math"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// EvalConstant maps integer constants to singletons, anything else to Top.
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
	if op != expr.OpNegate {
		return Top()
	}

	return negate(arg)
}

func negate(v Value) Value {
	low, ok1 := v.High().neg()
	high, ok2 := v.Low().neg()
	if !ok1 || !ok2 {
		return Top()
	}

	return Range(low, high)
}

// EvalBinary computes interval arithmetic.
func (Value) EvalBinary(op expr.Operator, left, right Value) Value {
	if left.IsBottom() || right.IsBottom() {
		return Bottom()
	}

	switch op {
	case expr.OpAdd:
		low, ok1 := left.Low().add(right.Low())
		high, ok2 := left.High().add(right.High())
		if !ok1 || !ok2 {
			return Top()
		}
		return Range(low, high)

	case expr.OpSub:
		neg := negate(right)
		if neg.IsTop() && !right.IsTop() {
			return Top()
		}
		return Value{}.EvalBinary(expr.OpAdd, left, neg)

	case expr.OpMul:
		return corners(left, right, Bound.mul)

	case expr.OpDiv:
		if right.isZero() {
			return Bottom()
		}
		if right.Contains(0) {
			return Top()
		}
		return corners(left, right, Bound.div)

	case expr.OpRem:
		if right.isZero() {
			return Bottom()
		}
		if right.Contains(0) {
			return Top()
		}
		return remainder(left, right)

	default:
		return Top()
	}
}

// Wraps checks if op may overflow int64 for some members of left and right. Infinite ends
// stand for the int64 limits: a variable is never out of them.
func Wraps(op expr.Operator, left, right Value) bool {
	if left.IsBottom() || right.IsBottom() {
		return false
	}

	return Value{}.EvalBinary(op, left.clamped(), right.clamped()).IsTop()
}

func (v Value) clamped() Value {
	low, high := v.Low(), v.High()
	if !low.IsFinite() {
		low = Finite(math.MinInt64)
	}
	if !high.IsFinite() {
		high = Finite(math.MaxInt64)
	}

	return Value{kind: kindValue, low: low, high: high}
}

func corners(a, b Value, op func(Bound, Bound) (Bound, bool)) Value {
	as := [2]Bound{a.Low(), a.High()}
	bs := [2]Bound{b.Low(), b.High()}

	low, high := PlusInf, MinusInf
	for _, x := range as {
		for _, y := range bs {
			r, ok := op(x, y)
			if !ok {
				return Top()
			}
			low = minBound(low, r)
			high = maxBound(high, r)
		}
	}

	return Range(low, high)
}

// remainder of a division by an interval not containing zero: the result is smaller than
// the divisor by absolute value and follows the sign of the dividend.
func remainder(a, b Value) Value {
	limit := PlusInf
	if b.Low().IsFinite() && b.High().IsFinite() {
		l, _ := b.Low().Int()
		h, _ := b.High().Int()
		m := max(absU(l), absU(h)) - 1
		if m <= math.MaxInt64 {
			limit = Finite(int64(m))
		}
	}
	neg, _ := limit.neg()

	switch {
	case a.Low().sign() >= 0:
		return Range(Finite(0), minBound(limit, a.High()))
	case a.High().sign() <= 0:
		return Range(maxBound(neg, a.Low()), Finite(0))
	default:
		return Range(maxBound(neg, a.Low()), minBound(limit, a.High()))
	}
}

func absU(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}

	return uint64(n)
}

// SatisfiesBinary decides comparisons between two intervals.
func (Value) SatisfiesBinary(op expr.Operator, left, right Value) lattice.Satisfiability {
	if left.IsBottom() || right.IsBottom() {
		return lattice.Unknown
	}

	switch op {
	case expr.OpEq:
		return satisfiesEq(left, right)
	case expr.OpNe:
		return satisfiesEq(left, right).Negate()
	case expr.OpLt:
		return satisfiesLt(left, right)
	case expr.OpGe:
		return satisfiesLt(left, right).Negate()
	case expr.OpGt:
		return satisfiesLt(right, left)
	case expr.OpLe:
		return satisfiesLt(right, left).Negate()
	default:
		return lattice.Unknown
	}
}

func satisfiesEq(a, b Value) lattice.Satisfiability {
	if x, ok := a.Constant(); ok {
		if y, ok := b.Constant(); ok && x == y {
			return lattice.Satisfied
		}
	}
	if a.Glb(b).IsBottom() {
		return lattice.NotSatisfied
	}

	return lattice.Unknown
}

func satisfiesLt(a, b Value) lattice.Satisfiability {
	switch {
	case a.High().Cmp(b.Low()) < 0:
		return lattice.Satisfied
	case a.Low().Cmp(b.High()) >= 0:
		return lattice.NotSatisfied
	default:
		return lattice.Unknown
	}
}

// Refine restricts current to values x with x op other.
func (Value) Refine(op expr.Operator, current, other Value) Value {
	if current.IsBottom() || other.IsBottom() {
		return current
	}

	switch op {
	case expr.OpEq:
		return current.Glb(other)
	case expr.OpLt:
		return current.Glb(below(other.High(), 1))
	case expr.OpLe:
		return current.Glb(below(other.High(), 0))
	case expr.OpGt:
		return current.Glb(above(other.Low(), 1))
	case expr.OpGe:
		return current.Glb(above(other.Low(), 0))
	case expr.OpNe:
		n, ok := other.Constant()
		if !ok {
			return current
		}
		if current.Low() == Finite(n) {
			if n == math.MaxInt64 {
				return Bottom()
			}
			return Range(Finite(n+1), current.High())
		}
		if current.High() == Finite(n) {
			if n == math.MinInt64 {
				return Bottom()
			}
			return Range(current.Low(), Finite(n-1))
		}
		return current
	default:
		return current
	}
}

// below returns (-∞, b - gap].
func below(b Bound, gap int64) Value {
	n, ok := b.Int()
	if !ok {
		return Top()
	}
	if n < math.MinInt64+gap {
		return Bottom()
	}

	return AtMost(n - gap)
}

// above returns [b + gap, +∞).
func above(b Bound, gap int64) Value {
	n, ok := b.Int()
	if !ok {
		return Top()
	}
	if n > math.MaxInt64-gap {
		return Bottom()
	}

	return AtLeast(n + gap)
}

func (v Value) isZero() bool {
	n, ok := v.Constant()
	return ok && n == 0
}
