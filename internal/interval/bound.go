package interval

import (
	"math"
	"strconv"
)

// Bound is an interval end: a finite integer or an infinity.
type Bound struct {
	inf int8
	n   int64
}

var (
	// MinusInf is below every integer.
	MinusInf = Bound{inf: -1}

	// PlusInf is above every integer.
	PlusInf = Bound{inf: 1}
)

// Finite creates a finite bound.
func Finite(n int64) Bound {
	return Bound{n: n}
}

// IsFinite checks the bound is an integer.
func (b Bound) IsFinite() bool {
	return b.inf == 0
}

// Int returns the integer of a finite bound.
func (b Bound) Int() (int64, bool) {
	return b.n, b.inf == 0
}

// Cmp compares bounds.
func (b Bound) Cmp(other Bound) int {
	switch {
	case b.inf != other.inf:
		if b.inf < other.inf {
			return -1
		}
		return 1
	case b.inf != 0:
		return 0
	case b.n < other.n:
		return -1
	case b.n > other.n:
		return 1
	default:
		return 0
	}
}

func (b Bound) String() string {
	switch b.inf {
	case -1:
		return "-Inf"
	case 1:
		return "+Inf"
	default:
		return strconv.FormatInt(b.n, 10)
	}
}

func (b Bound) neg() (Bound, bool) {
	if b.inf != 0 {
		return Bound{inf: -b.inf}, true
	}
	if b.n == math.MinInt64 {
		return Bound{}, false
	}

	return Finite(-b.n), true
}

// add sums bounds of the same side of intervals, so opposite infinities never meet.
func (b Bound) add(other Bound) (Bound, bool) {
	if b.inf != 0 {
		return b, true
	}
	if other.inf != 0 {
		return other, true
	}

	c := b.n + other.n
	if (c > b.n) != (other.n > 0) {
		return Bound{}, false
	}

	return Finite(c), true
}

func (b Bound) sign() int {
	switch {
	case b.inf != 0:
		return int(b.inf)
	case b.n < 0:
		return -1
	case b.n > 0:
		return 1
	default:
		return 0
	}
}

func (b Bound) mul(other Bound) (Bound, bool) {
	if b.inf != 0 || other.inf != 0 {
		s := b.sign() * other.sign()
		if s == 0 {
			return Finite(0), true
		}
		return Bound{inf: int8(s)}, true
	}

	x, y := b.n, other.n
	if x == 0 || y == 0 {
		return Finite(0), true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return Bound{}, false
	}
	c := x * y
	if c/y != x {
		return Bound{}, false
	}

	return Finite(c), true
}

// div divides by a bound of a divisor interval not containing zero.
func (b Bound) div(other Bound) (Bound, bool) {
	switch {
	case other.inf != 0:
		return Finite(0), true
	case b.inf != 0:
		return Bound{inf: int8(b.sign() * other.sign())}, true
	}

	if other.n == -1 && b.n == math.MinInt64 {
		return Bound{}, false
	}

	return Finite(b.n / other.n), true
}

func minBound(a, b Bound) Bound {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxBound(a, b Bound) Bound {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
