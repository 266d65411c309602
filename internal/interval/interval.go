package interval

import (
	"github.com/sirkon/absint/internal/lattice"
)

type kind uint8

const (
	kindTop kind = iota
	kindBottom
	kindValue
)

// Value is an element of the interval lattice. The zero value is Top.
type Value struct {
	kind kind
	low  Bound
	high Bound
}

// Range creates [low, high]. An empty range is Bottom, (-∞, +∞) is Top.
func Range(low, high Bound) Value {
	switch {
	case low.Cmp(high) > 0, low == PlusInf, high == MinusInf:
		return Bottom()
	case low == MinusInf && high == PlusInf:
		return Top()
	default:
		return Value{kind: kindValue, low: low, high: high}
	}
}

// New creates a finite interval.
func New(low, high int64) Value {
	return Range(Finite(low), Finite(high))
}

// Singleton is the interval of one integer.
func Singleton(n int64) Value {
	return New(n, n)
}

// AtLeast is [n, +∞).
func AtLeast(n int64) Value {
	return Range(Finite(n), PlusInf)
}

// AtMost is (-∞, n].
func AtMost(n int64) Value {
	return Range(MinusInf, Finite(n))
}

// Top is (-∞, +∞).
func Top() Value {
	return Value{}
}

// Bottom is the empty interval.
func Bottom() Value {
	return Value{kind: kindBottom}
}

// Low returns the lower bound. Bottom has none and reports +∞.
func (v Value) Low() Bound {
	switch v.kind {
	case kindTop:
		return MinusInf
	case kindBottom:
		return PlusInf
	default:
		return v.low
	}
}

// High returns the upper bound. Bottom has none and reports -∞.
func (v Value) High() Bound {
	switch v.kind {
	case kindTop:
		return PlusInf
	case kindBottom:
		return MinusInf
	default:
		return v.high
	}
}

// Constant returns the only member of a singleton interval.
func (v Value) Constant() (int64, bool) {
	if v.kind != kindValue || v.low != v.high {
		return 0, false
	}

	return v.low.Int()
}

// Contains checks n is in the interval.
func (v Value) Contains(n int64) bool {
	return Singleton(n).LessOrEqual(v)
}

// Top to implement lattice.Lattice.
func (Value) Top() Value {
	return Top()
}

// Bottom to implement lattice.Lattice.
func (Value) Bottom() Value {
	return Bottom()
}

// IsTop checks for (-∞, +∞).
func (v Value) IsTop() bool {
	return v.kind == kindTop
}

// IsBottom checks for the empty interval.
func (v Value) IsBottom() bool {
	return v.kind == kindBottom
}

// LessOrEqual checks inclusion.
func (v Value) LessOrEqual(other Value) bool {
	switch {
	case v.IsBottom():
		return true
	case other.IsBottom():
		return false
	}

	return other.Low().Cmp(v.Low()) <= 0 && v.High().Cmp(other.High()) <= 0
}

// Lub is the convex hull.
func (v Value) Lub(other Value) Value {
	switch {
	case v.IsBottom():
		return other
	case other.IsBottom():
		return v
	}

	return Range(minBound(v.Low(), other.Low()), maxBound(v.High(), other.High()))
}

// Glb is the intersection.
func (v Value) Glb(other Value) Value {
	if v.IsBottom() || other.IsBottom() {
		return Bottom()
	}

	return Range(maxBound(v.Low(), other.Low()), minBound(v.High(), other.High()))
}

// Widening pushes unstable bounds to infinity.
func (v Value) Widening(other Value) Value {
	switch {
	case v.IsBottom():
		return other
	case other.IsBottom():
		return v
	}

	low, high := v.Low(), v.High()
	if other.Low().Cmp(low) < 0 {
		low = MinusInf
	}
	if other.High().Cmp(high) > 0 {
		high = PlusInf
	}

	return Range(low, high)
}

// Narrowing replaces infinite bounds with other's ones.
func (v Value) Narrowing(other Value) Value {
	if v.IsBottom() || other.IsBottom() {
		return Bottom()
	}

	low, high := v.Low(), v.High()
	if !low.IsFinite() {
		low = other.Low()
	}
	if !high.IsFinite() {
		high = other.High()
	}

	return Range(low, high)
}

// Equal checks value equality.
func (v Value) Equal(other Value) bool {
	return v == other
}

func (v Value) String() string {
	if v.IsBottom() {
		return lattice.BottomString
	}

	return "[" + v.Low().String() + ", " + v.High().String() + "]"
}
