package congruence

import (
	"math"
)

func abs(a int64) (int64, bool) {
	if a == math.MinInt64 {
		return 0, false
	}
	if a < 0 {
		return -a, true
	}

	return a, true
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}

	return a
}

func lcm(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	return mul(a/gcd(a, b), b)
}

// extendedGCD returns g = gcd(a, b) and the coefficients of a·s + b·t = g.
func extendedGCD(a, b int64) (g, s, t int64) {
	oldR, r := a, b
	oldS, s := int64(1), int64(0)
	oldT, t := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
		oldT, t = t, oldT-q*t
	}

	return oldR, oldS, oldT
}

func divides(a, b int64) bool {
	if a == 0 {
		return b == 0
	}

	return b%a == 0
}

// eqModulo checks a ≡ b (mod m) without computing a - b.
func eqModulo(a, b, m int64) bool {
	if m == 0 {
		return a == b
	}

	return (a%m-b%m)%m == 0
}

func add(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) == (b > 0) {
		return c, true
	}

	return 0, false
}

func sub(a, b int64) (int64, bool) {
	if b == math.MinInt64 {
		if a >= 0 {
			return 0, false
		}
		return a - b, true
	}

	return add(a, -b)
}

func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}

	c := a * b
	if c/b != a {
		return 0, false
	}

	return c, true
}
