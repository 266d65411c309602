package congruence

import (
	"fmt"

	"github.com/sirkon/absint/internal/lattice"
)

type kind uint8

const (
	kindTop kind = iota
	kindBottom
	kindValue
)

// Value is an element of the congruence lattice. The zero value is Top.
type Value struct {
	kind    kind
	modulus int64
	residue int64
}

// New creates the congruence class residue + modulus·ℤ. A negative modulus is taken by
// its absolute value, the residue is reduced to [0, modulus) for positive moduli.
func New(modulus, residue int64) Value {
	m, ok := abs(modulus)
	if !ok {
		return Top()
	}

	switch m {
	case 0:
		return Value{kind: kindValue, residue: residue}
	case 1:
		return Top()
	}

	r := residue % m
	if r < 0 {
		r += m
	}

	return Value{kind: kindValue, modulus: m, residue: r}
}

// Singleton is the class holding exactly one integer.
func Singleton(n int64) Value {
	return New(0, n)
}

// Top is the class of all integers.
func Top() Value {
	return Value{}
}

// Bottom is the empty class.
func Bottom() Value {
	return Value{kind: kindBottom}
}

// Modulus returns the modulus, 1 for Top and 0 for Bottom.
func (v Value) Modulus() int64 {
	m, _ := v.pair()
	return m
}

// Residue returns the residue, 0 for Top and Bottom.
func (v Value) Residue() int64 {
	_, r := v.pair()
	return r
}

// Constant returns the only member of a singleton class.
func (v Value) Constant() (int64, bool) {
	if v.kind != kindValue || v.modulus != 0 {
		return 0, false
	}

	return v.residue, true
}

func (v Value) pair() (int64, int64) {
	switch v.kind {
	case kindTop:
		return 1, 0
	case kindBottom:
		return 0, 0
	default:
		return v.modulus, v.residue
	}
}

// Top to implement lattice.Lattice.
func (Value) Top() Value {
	return Top()
}

// Bottom to implement lattice.Lattice.
func (Value) Bottom() Value {
	return Bottom()
}

// IsTop checks if this is the class of all integers.
func (v Value) IsTop() bool {
	return v.kind == kindTop
}

// IsBottom checks if this is the empty class.
func (v Value) IsBottom() bool {
	return v.kind == kindBottom
}

// LessOrEqual checks v ⊆ other: other's modulus divides v's one and residues agree
// modulo other's modulus.
func (v Value) LessOrEqual(other Value) bool {
	switch {
	case v.IsBottom():
		return true
	case other.IsBottom():
		return false
	}

	am, ar := v.pair()
	bm, br := other.pair()
	return divides(bm, am) && eqModulo(ar, br, bm)
}

// Lub joins two classes. The residue is taken from other.
func (v Value) Lub(other Value) Value {
	switch {
	case v.IsBottom():
		return other
	case other.IsBottom():
		return v
	}

	am, ar := v.pair()
	bm, br := other.pair()
	diff, ok := sub(ar, br)
	if !ok {
		return Top()
	}

	return New(gcd(gcd(am, bm), diff), br)
}

// Glb intersects two classes with the Chinese remainder theorem.
func (v Value) Glb(other Value) Value {
	if v.IsBottom() || other.IsBottom() {
		return Bottom()
	}

	am, ar := v.pair()
	bm, br := other.pair()
	g, s, _ := extendedGCD(am, bm)
	if !eqModulo(ar, br, g) {
		return Bottom()
	}
	if g == 0 {
		return New(0, ar)
	}

	m, ok := lcm(am, bm)
	if !ok {
		return v
	}

	// x = ar + am·s·(br-ar)/g, with the product reduced modulo bm/g.
	diff, ok := sub(br, ar)
	if !ok {
		return v
	}
	n := bm / g
	k := diff / g
	if n != 0 {
		k %= n
		s %= n
	}
	sk, ok := mul(s, k)
	if !ok {
		return v
	}
	if n != 0 {
		sk %= n
	}
	shift, ok := mul(am, sk)
	if !ok {
		return v
	}
	res, ok := add(ar, shift)
	if !ok {
		return v
	}

	return New(m, res)
}

// Widening is the join: the lattice has no infinite ascending chains.
func (v Value) Widening(other Value) Value {
	return v.Lub(other)
}

// Narrowing only refines Top.
func (v Value) Narrowing(other Value) Value {
	if v.IsTop() {
		return other
	}

	return v
}

// Equal checks value equality.
func (v Value) Equal(other Value) bool {
	return v == other
}

func (v Value) String() string {
	if v.IsBottom() {
		return lattice.BottomString
	}

	m, r := v.pair()
	return fmt.Sprintf("%dZ+%d", m, r)
}
