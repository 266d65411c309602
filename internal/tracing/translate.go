package tracing

import (
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/sirkon/absint/internal/expr"
)

// Identifier names the register or parameter holding v. Parameters and free variables
// keep their source names, registers get a % prefix no Go name can have.
func Identifier(v ssa.Value) expr.Identifier {
	switch v.(type) {
	case *ssa.Parameter, *ssa.FreeVar:
		return expr.Ident(v.Name())
	default:
		return expr.Ident("%" + v.Name())
	}
}

// Translate lowers the definition of an SSA value into an expression. The flag is false
// for values whose definition cannot be expressed faithfully: calls, loads,
// conversions and the like. Such values must be forgotten, not assigned.
func Translate(v ssa.Value) (expr.Expr, bool) {
	switch x := v.(type) {
	case *ssa.Const:
		return constantOf(x)

	case *ssa.BinOp:
		op, ok := binaryOps[x.Op]
		if !ok || !tracked(x.X.Type()) {
			return nil, false
		}
		return expr.Bin(op, Operand(x.X), Operand(x.Y)), true

	case *ssa.UnOp:
		switch x.Op {
		case token.SUB:
			if !isInteger(x.X.Type()) {
				return nil, false
			}
			return expr.Neg(Operand(x.X)), true
		case token.NOT:
			return expr.Not(Operand(x.X)), true
		default:
			return nil, false
		}

	case *ssa.ChangeType:
		// Same underlying type, the value is just copied.
		if !tracked(x.Type()) {
			return nil, false
		}
		return Operand(x.X), true

	default:
		return nil, false
	}
}

// Operand is the expression for a value used as an operand: constants stay literal,
// anything else is referred to by its name.
func Operand(v ssa.Value) expr.Expr {
	if c, ok := v.(*ssa.Const); ok {
		if e, ok := constantOf(c); ok {
			return e
		}
	}

	return Identifier(v)
}

// Tracked tells if values of this type are worth handing to a domain at all.
func Tracked(v ssa.Value) bool {
	return tracked(v.Type())
}

func tracked(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	return b.Info()&types.IsBoolean != 0 || isInteger(t)
}

// isInteger accepts only integers whose arithmetic is the checked int64 one the domains
// model. Narrower and unsigned kinds wrap earlier and are left opaque.
func isInteger(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	switch b.Kind() {
	case types.Int, types.Int64, types.UntypedInt:
		return true
	default:
		return false
	}
}

func constantOf(c *ssa.Const) (expr.Expr, bool) {
	if c.Value == nil {
		return nil, false
	}

	switch c.Value.Kind() {
	case constant.Int:
		v, exact := constant.Int64Val(c.Value)
		if !exact {
			return nil, false
		}
		return expr.Int(v), true
	case constant.Bool:
		return expr.Constant{Value: constant.BoolVal(c.Value)}, true
	default:
		return nil, false
	}
}

var binaryOps = map[token.Token]expr.Operator{
	token.ADD: expr.OpAdd,
	token.SUB: expr.OpSub,
	token.MUL: expr.OpMul,
	token.QUO: expr.OpDiv,
	token.REM: expr.OpRem,
	token.EQL: expr.OpEq,
	token.NEQ: expr.OpNe,
	token.GTR: expr.OpGt,
	token.GEQ: expr.OpGe,
	token.LSS: expr.OpLt,
	token.LEQ: expr.OpLe,
}

// IsDivision tells if the instruction divides integers.
func IsDivision(v ssa.Value) bool {
	b, ok := v.(*ssa.BinOp)
	if !ok {
		return false
	}

	return (b.Op == token.QUO || b.Op == token.REM) && isInteger(b.X.Type())
}
