package tracing

import (
	"go/ast"
)

// CollectConditions indexes every condition-bearing statement of the file.
func CollectConditions(file *ast.File) *Context {
	ctx := NewContext()

	ast.Inspect(file, func(n ast.Node) bool {
		ctx.AddCondition(n)
		return true
	})

	return ctx
}

// AddCondition indexes the node by the span of its condition if it has one. Looking a
// position up then yields the statement only when the position is inside the
// condition itself. Nodes must come in preorder.
func (c *Context) AddCondition(n ast.Node) {
	switch node := n.(type) {
	case *ast.IfStmt:
		c.AddSpan(node, node.Cond.Pos(), node.Cond.End())

	case *ast.ForStmt:
		if node.Cond != nil {
			c.AddSpan(node, node.Cond.Pos(), node.Cond.End())
		}

	case *ast.CaseClause:
		// The default clause has no list.
		if len(node.List) > 0 {
			c.AddSpan(node, node.List[0].Pos(), node.List[len(node.List)-1].End())
		}
	}
}

// StatementKind names the statement a condition belongs to.
func StatementKind(n ast.Node) string {
	switch n.(type) {
	case *ast.IfStmt:
		return "if"
	case *ast.ForStmt:
		return "for"
	case *ast.CaseClause:
		return "case"
	default:
		return "branch"
	}
}
