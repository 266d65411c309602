package expr

import (
	"fmt"
	"strings"
)

// Constant is a literal value. Only integers carry meaning for the numeric domains.
//
//	Constant{Value: int64(4)} // 4
//	Constant{Value: true}     // true, opaque for numeric domains
type Constant struct {
	Value any
}

// Int returns the constant as an integer when it is one.
func (c Constant) Int() (int64, bool) {
	switch v := c.Value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	default:
		return 0, false
	}
}

func (c Constant) String() string {
	return fmt.Sprint(c.Value)
}

// Identifier names a program variable. Scope is empty for identifiers of the current
// frame and holds the chain of pushed scope tokens otherwise.
type Identifier struct {
	Name  string
	Scope string
}

// PushScope moves the identifier into the given scope.
func (id Identifier) PushScope(token string) Identifier {
	if id.Scope == "" {
		return Identifier{Name: id.Name, Scope: token}
	}

	return Identifier{Name: id.Name, Scope: token + "/" + id.Scope}
}

// PopScope leaves the given scope. Identifiers that do not belong to it do not survive.
func (id Identifier) PopScope(token string) (Identifier, bool) {
	switch {
	case id.Scope == token:
		return Identifier{Name: id.Name}, true
	case strings.HasPrefix(id.Scope, token+"/"):
		return Identifier{Name: id.Name, Scope: id.Scope[len(token)+1:]}, true
	default:
		return Identifier{}, false
	}
}

// Compare orders identifiers by scope, then by name.
func (id Identifier) Compare(other Identifier) int {
	if c := strings.Compare(id.Scope, other.Scope); c != 0 {
		return c
	}

	return strings.Compare(id.Name, other.Name)
}

func (id Identifier) String() string {
	if id.Scope == "" {
		return id.Name
	}

	return id.Name + "@" + id.Scope
}

// Unary applies an operator to one operand.
//
//	Unary{Op: OpNegate, Operand: Ident("x")} // -x
//	Unary{Op: OpNot, Operand: …}             // !(…)
type Unary struct {
	Op      Operator
	Operand Expr
}

func (u Unary) String() string {
	return u.Op.Symbol() + "(" + u.Operand.String() + ")"
}

// Binary applies an operator to two operands.
//
//	Binary{Op: OpSub, Left: Ident("x"), Right: Ident("y")} // x - y
type Binary struct {
	Op    Operator
	Left  Expr
	Right Expr
}

func (b Binary) String() string {
	return b.Left.String() + " " + b.Op.Symbol() + " " + b.Right.String()
}

func (Constant) isExpr()   {}
func (Identifier) isExpr() {}
func (Unary) isExpr()      {}
func (Binary) isExpr()     {}

// Ident is a shortcut for a current frame identifier.
func Ident(name string) Identifier {
	return Identifier{Name: name}
}

// Int is a shortcut for an integer constant.
func Int(v int64) Constant {
	return Constant{Value: v}
}

// Bin is a shortcut for a binary expression.
func Bin(op Operator, left, right Expr) Binary {
	return Binary{Op: op, Left: left, Right: right}
}

// Not wraps an expression into a logical negation.
func Not(e Expr) Unary {
	return Unary{Op: OpNot, Operand: e}
}

// Neg wraps an expression into a numeric negation.
func Neg(e Expr) Unary {
	return Unary{Op: OpNegate, Operand: e}
}
