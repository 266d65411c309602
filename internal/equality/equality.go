package equality

import (
	"strings"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// State is an element of the equality domain. The zero value is Top: no equalities are
// known.
type State struct {
	bottom  bool
	classes partition
}

// Top returns the state with no known equalities.
func Top() State {
	return State{}
}

// Bottom returns the unreachable state.
func Bottom() State {
	return State{bottom: true}
}

// FromClasses builds a state out of groups of equal identifiers. Groups sharing an
// identifier are merged.
func FromClasses(groups ...[]expr.Identifier) State {
	var p partition
	for _, g := range groups {
		for i := 1; i < len(g); i++ {
			p = p.merge(g[0], g[i])
		}
	}

	return State{classes: p}
}

// Top to implement lattice.Lattice.
func (State) Top() State {
	return Top()
}

// Bottom to implement lattice.Lattice.
func (State) Bottom() State {
	return Bottom()
}

// IsTop checks no equalities are known.
func (s State) IsTop() bool {
	return !s.bottom && len(s.classes) == 0
}

// IsBottom checks the state is unreachable.
func (s State) IsBottom() bool {
	return s.bottom
}

// Classes returns copies of the equality classes.
func (s State) Classes() [][]expr.Identifier {
	res := make([][]expr.Identifier, len(s.classes))
	for i, c := range s.classes {
		res[i] = append([]expr.Identifier(nil), c...)
	}

	return res
}

// Equal checks both states encode the same partition.
func (s State) Equal(other State) bool {
	if s.bottom || other.bottom {
		return s.bottom == other.bottom
	}

	return s.classes.equal(other.classes)
}

// Same reports whether the identifiers are proven equal.
func (s State) Same(a, b expr.Identifier) bool {
	if a == b {
		return true
	}

	i := s.classes.find(a)
	return i >= 0 && s.classes[i].contains(b)
}

// LessOrEqual checks s encodes every equality other does.
func (s State) LessOrEqual(other State) bool {
	switch {
	case s.bottom:
		return true
	case other.bottom:
		return false
	}

	for _, c := range other.classes {
		i := s.classes.find(c[0])
		if i < 0 || !c.subsetOf(s.classes[i]) {
			return false
		}
	}

	return true
}

// Lub keeps equalities holding on both sides.
func (s State) Lub(other State) State {
	switch {
	case s.bottom:
		return other
	case other.bottom:
		return s
	}

	var classes []class
	for _, a := range s.classes {
		for _, b := range other.classes {
			classes = append(classes, a.intersect(b))
		}
	}

	return State{classes: normalize(classes)}
}

// Glb keeps equalities holding on either side.
func (s State) Glb(other State) State {
	if s.bottom || other.bottom {
		return Bottom()
	}

	p := s.classes
	for _, c := range other.classes {
		for _, id := range c[1:] {
			p = p.merge(c[0], id)
		}
	}

	return State{classes: p}
}

// Widening is the join: every ascending chain of partitions is finite for a finite set
// of variables.
func (s State) Widening(other State) State {
	return s.Lub(other)
}

func (s State) String() string {
	if s.bottom {
		return lattice.BottomString
	}

	parts := make([]string, len(s.classes))
	for i, c := range s.classes {
		parts[i] = c.String()
	}

	return strings.Join(parts, ", ")
}
