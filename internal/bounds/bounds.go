package bounds

import (
	"maps"
	"slices"
	"strings"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// State is an element of the strict upper bounds domain. The zero value is Top.
type State struct {
	bottom bool
	bounds map[expr.Identifier]Set
}

// Top returns the state with no known bounds.
func Top() State {
	return State{}
}

// Bottom returns the unreachable state.
func Bottom() State {
	return State{bottom: true}
}

// FromMap builds a transitively closed state out of x → strict upper bounds of x.
func FromMap(facts map[expr.Identifier][]expr.Identifier) State {
	res := map[expr.Identifier]Set{}
	for id, ids := range facts {
		res[id] = NewSet(ids...)
	}

	return build(res).closed()
}

// build drops empty sets.
func build(bounds map[expr.Identifier]Set) State {
	maps.DeleteFunc(bounds, func(_ expr.Identifier, s Set) bool { return s.Len() == 0 })
	return State{bounds: bounds}
}

// Top to implement lattice.Lattice.
func (State) Top() State {
	return Top()
}

// Bottom to implement lattice.Lattice.
func (State) Bottom() State {
	return Bottom()
}

// IsTop checks no bounds are known.
func (s State) IsTop() bool {
	return !s.bottom && len(s.bounds) == 0
}

// IsBottom checks the state is unreachable.
func (s State) IsBottom() bool {
	return s.bottom
}

// Get returns strict upper bounds of the identifier.
func (s State) Get(id expr.Identifier) Set {
	return s.bounds[id]
}

// Keys returns identifiers having bounds, sorted.
func (s State) Keys() []expr.Identifier {
	keys := slices.Collect(maps.Keys(s.bounds))
	slices.SortFunc(keys, expr.Identifier.Compare)
	return keys
}

// With returns the state with the bounds of id replaced.
func (s State) With(id expr.Identifier, set Set) State {
	if s.bottom {
		return s
	}

	res := s.clone()
	res[id] = set
	return build(res)
}

func (s State) clone() map[expr.Identifier]Set {
	res := maps.Clone(s.bounds)
	if res == nil {
		res = map[expr.Identifier]Set{}
	}

	return res
}

// LessOrEqual checks s knows every bound other does.
func (s State) LessOrEqual(other State) bool {
	switch {
	case s.bottom:
		return true
	case other.bottom:
		return false
	}

	for id, set := range other.bounds {
		if !set.SubsetOf(s.bounds[id]) {
			return false
		}
	}

	return true
}

// Lub keeps bounds known on both sides.
func (s State) Lub(other State) State {
	switch {
	case s.bottom:
		return other
	case other.bottom:
		return s
	}

	res := map[expr.Identifier]Set{}
	for id, set := range s.bounds {
		if o, ok := other.bounds[id]; ok {
			res[id] = set.Intersect(o)
		}
	}

	return build(res)
}

// Glb keeps bounds known on either side.
func (s State) Glb(other State) State {
	if s.bottom || other.bottom {
		return Bottom()
	}

	res := s.clone()
	for id, set := range other.bounds {
		res[id] = res[id].Union(set)
	}

	return build(res).closed()
}

// Widening forgets every bound set that changed.
func (s State) Widening(other State) State {
	switch {
	case s.bottom:
		return other
	case other.bottom:
		return s
	}

	res := map[expr.Identifier]Set{}
	for id, set := range s.bounds {
		if set.Equal(other.bounds[id]) {
			res[id] = set
		}
	}

	return build(res)
}

// Equal checks value equality.
func (s State) Equal(other State) bool {
	if s.bottom || other.bottom {
		return s.bottom == other.bottom
	}

	return maps.EqualFunc(s.bounds, other.bounds, Set.Equal)
}

// closed computes the transitive closure. A variable bounded by itself makes the state
// unreachable.
func (s State) closed() State {
	if s.bottom {
		return s
	}

	res := s.clone()
	for changed := true; changed; {
		changed = false
		for id, set := range res {
			next := set
			for _, up := range set.ids {
				next = next.Union(res[up])
			}
			if next.Len() != set.Len() {
				res[id] = next
				changed = true
			}
		}
	}

	for id, set := range res {
		if set.Contains(id) {
			return Bottom()
		}
	}

	return build(res)
}

func (s State) String() string {
	switch {
	case s.bottom:
		return lattice.BottomString
	case len(s.bounds) == 0:
		return lattice.TopString
	}

	var buf strings.Builder
	for i, id := range s.Keys() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(id.String())
		buf.WriteString(" < ")
		buf.WriteString(s.bounds[id].String())
	}

	return buf.String()
}
