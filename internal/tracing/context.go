package tracing

import (
	"go/ast"
	"go/token"

	"github.com/sirkon/rbtree"
)

// Context maps source positions to the innermost registered node covering them.
// Spans must either be disjoint or nested, and an enclosing span must be added
// before the spans it contains unless it covers just one of them.
type Context struct {
	tree *rbtree.Tree[*span]
}

func NewContext() *Context {
	return &Context{tree: rbtree.New[*span]()}
}

// GetByPos returns the innermost node covering pos.
func (c *Context) GetByPos(pos token.Pos) ast.Node {
	return innermost(c.tree, pos)
}

// Add registers a node under its own source span.
func (c *Context) Add(node ast.Node) {
	c.AddSpan(node, node.Pos(), node.End())
}

// AddSpan registers a node with an explicit [start, end] span.
func (c *Context) AddSpan(node ast.Node, start, end token.Pos) {
	insert(c.tree, &span{start: start, end: end, node: node})
}

// span is a [start, end] range owning a node and, lazily, a tree of the spans nested in it.
type span struct {
	start  token.Pos
	end    token.Pos
	node   ast.Node
	nested *rbtree.Tree[*span]
}

// Cmp orders disjoint spans by position. Any overlap compares equal, so a tree
// lookup with a point probe finds the top level span covering the point.
func (s *span) Cmp(other *span) int {
	switch {
	case s.end < other.start:
		return -1
	case s.start > other.end:
		return 1
	default:
		return 0
	}
}

func (s *span) covers(other *span) bool {
	return s.start <= other.start && other.end <= s.end
}

func (s *span) children() *rbtree.Tree[*span] {
	if s.nested == nil {
		s.nested = rbtree.New[*span]()
	}
	return s.nested
}

// insert puts s into the tree. When an overlapping span is already there it either
// moves under s or s goes under it. The tree has no replace operation, so the
// stored pointer takes over the contents of s in the first case.
func insert(tree *rbtree.Tree[*span], s *span) {
	present := tree.InsertReturn(s)
	switch {
	case present == s:
	case s.covers(present):
		inner := *present
		*present = *s
		insert(present.children(), &inner)
	case present.covers(s):
		insert(present.children(), s)
	default:
		panic("tracing: partially overlapping spans")
	}
}

func innermost(tree *rbtree.Tree[*span], pos token.Pos) ast.Node {
	found := tree.Search(&span{start: pos, end: pos})
	if found == nil {
		return nil
	}
	if found.nested != nil {
		if n := innermost(found.nested, pos); n != nil {
			return n
		}
	}

	return found.node
}
