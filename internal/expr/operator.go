package expr

import (
	"fmt"
)

// Operator enumerates operators expressions may carry. Values outside the declared
// constants are legal and stand for operators no domain knows about.
type Operator int

const (
	OpInvalid Operator = iota

	// Arithmetic.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpNegate

	// Comparisons.
	OpEq
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe

	// OpNot is the logical negation.
	OpNot

	// OpOther marks an operator a front-end recognized but the domains do not model.
	OpOther
)

var operatorValueMap = map[Operator]string{
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpRem:    "rem",
	OpNegate: "neg",
	OpEq:     "eq",
	OpNe:     "ne",
	OpGt:     "gt",
	OpGe:     "ge",
	OpLt:     "lt",
	OpLe:     "le",
	OpNot:    "not",
	OpOther:  "other",
}

var operatorSymbolMap = map[Operator]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpRem:    "%",
	OpNegate: "-",
	OpEq:     "==",
	OpNe:     "!=",
	OpGt:     ">",
	OpGe:     ">=",
	OpLt:     "<",
	OpLe:     "<=",
	OpNot:    "!",
}

func (o Operator) String() string {
	v, ok := operatorValueMap[o]
	if !ok {
		return fmt.Sprintf("invalid(%d)", o)
	}

	return v
}

// Symbol returns the operator as it is written in source code.
func (o Operator) Symbol() string {
	v, ok := operatorSymbolMap[o]
	if !ok {
		return "<" + o.String() + ">"
	}

	return v
}

// UnmarshalText for setting values with configs, CLI, etc.
func (o *Operator) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range operatorValueMap {
		if v == text || operatorSymbolMap[k] == text && k != OpNegate {
			*o = k
			return nil
		}
	}

	return fmt.Errorf("unknown operator %q", text)
}

// IsComparison tells if this is one of the six comparison operators.
func (o Operator) IsComparison() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		return true
	default:
		return false
	}
}

// Negate returns the comparison holding exactly when this one does not.
// Non-comparison operators are returned as is.
func (o Operator) Negate() Operator {
	switch o {
	case OpEq:
		return OpNe
	case OpNe:
		return OpEq
	case OpGt:
		return OpLe
	case OpGe:
		return OpLt
	case OpLt:
		return OpGe
	case OpLe:
		return OpGt
	default:
		return o
	}
}

// Flip returns the comparison with swapped operands: a < b is b > a.
// Non-comparison operators are returned as is.
func (o Operator) Flip() Operator {
	switch o {
	case OpGt:
		return OpLt
	case OpGe:
		return OpLe
	case OpLt:
		return OpGt
	case OpLe:
		return OpGe
	default:
		return o
	}
}
