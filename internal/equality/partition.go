package equality

import (
	"slices"
	"strings"

	"github.com/sirkon/absint/internal/expr"
)

// class is a sorted list of at least two identifiers. Classes are never modified once
// built.
type class []expr.Identifier

func (c class) contains(id expr.Identifier) bool {
	_, ok := slices.BinarySearchFunc(c, id, expr.Identifier.Compare)
	return ok
}

func (c class) subsetOf(other class) bool {
	for _, id := range c {
		if !other.contains(id) {
			return false
		}
	}

	return true
}

func (c class) intersect(other class) class {
	var res class
	for _, id := range c {
		if other.contains(id) {
			res = append(res, id)
		}
	}

	return res
}

func (c class) String() string {
	names := make([]string, len(c))
	for i, id := range c {
		names[i] = id.String()
	}

	return strings.Join(names, " = ")
}

// partition is a canonical list of classes: each class has at least two members and
// classes are sorted by their first member.
type partition []class

func normalize(classes []class) partition {
	var res partition
	for _, c := range classes {
		if len(c) < 2 {
			continue
		}
		c = slices.Clone(c)
		slices.SortFunc(c, expr.Identifier.Compare)
		res = append(res, slices.Compact(c))
	}
	slices.SortFunc(res, func(a, b class) int {
		return a[0].Compare(b[0])
	})

	return res
}

func (p partition) find(id expr.Identifier) int {
	return slices.IndexFunc(p, func(c class) bool { return c.contains(id) })
}

// merge unifies classes of a and b.
func (p partition) merge(a, b expr.Identifier) partition {
	if a == b {
		return p
	}

	ia, ib := p.find(a), p.find(b)
	if ia >= 0 && ia == ib {
		return p
	}

	united := class{a, b}
	classes := make([]class, 0, len(p)+1)
	for i, c := range p {
		if i == ia || i == ib {
			united = append(united, c...)
			continue
		}
		classes = append(classes, c)
	}

	return normalize(append(classes, united))
}

// isolate moves the identifier into its own class.
func (p partition) isolate(id expr.Identifier) partition {
	return p.isolateIf(func(x expr.Identifier) bool { return x == id })
}

func (p partition) isolateIf(test func(expr.Identifier) bool) partition {
	changed := false
	classes := make([]class, 0, len(p))
	for _, c := range p {
		if !slices.ContainsFunc(c, test) {
			classes = append(classes, c)
			continue
		}
		changed = true
		classes = append(classes, slices.DeleteFunc(slices.Clone(c), test))
	}
	if !changed {
		return p
	}

	return normalize(classes)
}

func (p partition) equal(other partition) bool {
	return slices.EqualFunc(p, other, func(a, b class) bool {
		return slices.Equal(a, b)
	})
}
