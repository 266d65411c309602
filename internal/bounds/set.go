package bounds

import (
	"slices"
	"strings"

	"github.com/sirkon/absint/internal/expr"
)

// Set is an immutable sorted set of identifiers. The zero value is the empty set.
type Set struct {
	ids []expr.Identifier
}

// NewSet creates a set of the given identifiers.
func NewSet(ids ...expr.Identifier) Set {
	res := slices.Clone(ids)
	slices.SortFunc(res, expr.Identifier.Compare)
	return Set{ids: slices.Compact(res)}
}

// Len returns the size of the set.
func (s Set) Len() int {
	return len(s.ids)
}

// Slice returns a copy of set members in order.
func (s Set) Slice() []expr.Identifier {
	return slices.Clone(s.ids)
}

// Contains checks id is a member.
func (s Set) Contains(id expr.Identifier) bool {
	_, ok := slices.BinarySearchFunc(s.ids, id, expr.Identifier.Compare)
	return ok
}

// SubsetOf checks every member of s is in other.
func (s Set) SubsetOf(other Set) bool {
	if len(s.ids) > len(other.ids) {
		return false
	}

	for _, id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}

	return true
}

// Equal checks sets have the same members.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.ids, other.ids)
}

// Add returns the set with id added.
func (s Set) Add(id expr.Identifier) Set {
	i, ok := slices.BinarySearchFunc(s.ids, id, expr.Identifier.Compare)
	if ok {
		return s
	}

	return Set{ids: slices.Insert(slices.Clone(s.ids), i, id)}
}

// Remove returns the set without id.
func (s Set) Remove(id expr.Identifier) Set {
	return s.RemoveIf(func(x expr.Identifier) bool { return x == id })
}

// RemoveIf returns the set without members passing the test.
func (s Set) RemoveIf(test func(expr.Identifier) bool) Set {
	if !slices.ContainsFunc(s.ids, test) {
		return s
	}

	return Set{ids: slices.DeleteFunc(slices.Clone(s.ids), test)}
}

// Union returns members of either set.
func (s Set) Union(other Set) Set {
	if other.SubsetOf(s) {
		return s
	}

	return NewSet(append(slices.Clone(s.ids), other.ids...)...)
}

// Intersect returns members of both sets.
func (s Set) Intersect(other Set) Set {
	var res []expr.Identifier
	for _, id := range s.ids {
		if other.Contains(id) {
			res = append(res, id)
		}
	}

	return Set{ids: res}
}

// Map renames members. Members mapped to false are dropped.
func (s Set) Map(rename func(expr.Identifier) (expr.Identifier, bool)) Set {
	res := make([]expr.Identifier, 0, len(s.ids))
	for _, id := range s.ids {
		if n, ok := rename(id); ok {
			res = append(res, n)
		}
	}

	return NewSet(res...)
}

func (s Set) String() string {
	names := make([]string, len(s.ids))
	for i, id := range s.ids {
		names[i] = id.String()
	}

	return "{" + strings.Join(names, ", ") + "}"
}
