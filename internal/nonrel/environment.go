package nonrel

import (
	"maps"
	"slices"
	"strings"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// Environment maps identifiers to values. Identifiers with no entry are unconstrained.
// The zero value is Top.
//
// The map is never modified after an environment is built, updates copy it.
type Environment[V Value[V]] struct {
	bottom bool
	values map[expr.Identifier]V
}

// Top returns the environment knowing nothing.
func Top[V Value[V]]() Environment[V] {
	return Environment[V]{}
}

// Bottom returns the unreachable environment.
func Bottom[V Value[V]]() Environment[V] {
	return Environment[V]{bottom: true}
}

func zero[V Value[V]]() V {
	var v V
	return v
}

// Top to implement lattice.Lattice.
func (Environment[V]) Top() Environment[V] {
	return Top[V]()
}

// Bottom to implement lattice.Lattice.
func (Environment[V]) Bottom() Environment[V] {
	return Bottom[V]()
}

// IsTop checks if nothing is known about any identifier.
func (e Environment[V]) IsTop() bool {
	if e.bottom {
		return false
	}

	for _, v := range e.values {
		if !v.IsTop() {
			return false
		}
	}

	return true
}

// IsBottom checks if the state is unreachable.
func (e Environment[V]) IsBottom() bool {
	return e.bottom
}

// Get returns the value of the identifier.
func (e Environment[V]) Get(id expr.Identifier) V {
	if e.bottom {
		return zero[V]().Bottom()
	}

	v, ok := e.values[id]
	if !ok {
		return zero[V]().Top()
	}

	return v
}

// Keys returns identifiers having an entry, sorted.
func (e Environment[V]) Keys() []expr.Identifier {
	return sortedKeys(e.values)
}

// Set returns the environment with the identifier bound to v. A Bottom value makes the
// whole state unreachable.
func (e Environment[V]) Set(id expr.Identifier, v V) Environment[V] {
	if e.bottom {
		return e
	}
	if v.IsBottom() {
		return Bottom[V]()
	}

	values := maps.Clone(e.values)
	if values == nil {
		values = map[expr.Identifier]V{}
	}
	values[id] = v

	return Environment[V]{values: values}
}

// LessOrEqual checks pointwise order.
func (e Environment[V]) LessOrEqual(other Environment[V]) bool {
	switch {
	case e.bottom:
		return true
	case other.bottom:
		return false
	}

	for id, v := range other.values {
		if !e.Get(id).LessOrEqual(v) {
			return false
		}
	}

	return true
}

// Lub joins pointwise. Identifiers known on one side only become unconstrained.
func (e Environment[V]) Lub(other Environment[V]) Environment[V] {
	return e.combine(other, func(a, b V) V { return a.Lub(b) })
}

// Widening widens pointwise.
func (e Environment[V]) Widening(other Environment[V]) Environment[V] {
	return e.combine(other, func(a, b V) V { return a.Widening(b) })
}

func (e Environment[V]) combine(other Environment[V], op func(a, b V) V) Environment[V] {
	switch {
	case e.bottom:
		return other
	case other.bottom:
		return e
	}

	values := map[expr.Identifier]V{}
	for id, a := range e.values {
		b, ok := other.values[id]
		if !ok {
			continue
		}
		values[id] = op(a, b)
	}

	return Environment[V]{values: values}
}

// Glb meets pointwise over identifiers of both sides. Value domains without a meet keep
// this environment's value.
func (e Environment[V]) Glb(other Environment[V]) Environment[V] {
	return e.refine(other, func(a, b V) V {
		if m, ok := any(a).(lattice.Meeter[V]); ok {
			return m.Glb(b)
		}
		return a
	})
}

// Narrowing narrows pointwise over identifiers of both sides.
func (e Environment[V]) Narrowing(other Environment[V]) Environment[V] {
	return e.refine(other, func(a, b V) V {
		if n, ok := any(a).(lattice.Narrower[V]); ok {
			return n.Narrowing(b)
		}
		return a
	})
}

func (e Environment[V]) refine(other Environment[V], op func(a, b V) V) Environment[V] {
	if e.bottom || other.bottom {
		return Bottom[V]()
	}

	values := maps.Clone(e.values)
	if values == nil {
		values = map[expr.Identifier]V{}
	}
	for id, b := range other.values {
		v := op(e.Get(id), b)
		if v.IsBottom() {
			return Bottom[V]()
		}
		values[id] = v
	}

	return Environment[V]{values: values}
}

// Equal checks both environments describe the same states.
func (e Environment[V]) Equal(other Environment[V]) bool {
	if e.bottom || other.bottom {
		return e.bottom == other.bottom
	}

	for id, v := range e.values {
		if !v.Equal(other.Get(id)) {
			return false
		}
	}
	for id, v := range other.values {
		if !v.Equal(e.Get(id)) {
			return false
		}
	}

	return true
}

func (e Environment[V]) String() string {
	if e.bottom {
		return lattice.BottomString
	}
	if len(e.values) == 0 {
		return lattice.TopString
	}

	var buf strings.Builder
	for i, id := range e.Keys() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(id.String())
		buf.WriteString(": ")
		buf.WriteString(e.values[id].String())
	}

	return buf.String()
}

func sortedKeys[V any](values map[expr.Identifier]V) []expr.Identifier {
	keys := slices.Collect(maps.Keys(values))
	slices.SortFunc(keys, expr.Identifier.Compare)
	return keys
}
