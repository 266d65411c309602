package lattice

import (
	"github.com/sirkon/errors"

	"github.com/sirkon/absint/internal/expr"
)

// TopString and BottomString are canonical renderings of the extreme elements.
const (
	TopString    = "⊤"
	BottomString = "⊥"
)

// ErrDomainComputation is the only failure domains report. It marks malformed input
// from collaborators, never an imprecise result.
var ErrDomainComputation = errors.New("domain computation error")

// ProgramPoint identifies where an operation happens. Domains forward it untouched.
type ProgramPoint any

// Oracle answers questions about other parts of the program state. Domains forward it untouched.
type Oracle any

// ScopeToken names a scope pushed at calls and popped at returns.
type ScopeToken string

// Lattice is the partial order part of the contract.
type Lattice[T any] interface {
	Top() T
	Bottom() T
	IsTop() bool
	IsBottom() bool
	LessOrEqual(other T) bool
	Lub(other T) T
	Widening(other T) T
	Equal(other T) bool
	String() string
}

// Meeter is implemented by lattices having a greatest lower bound.
type Meeter[T any] interface {
	Glb(other T) T
}

// Narrower is implemented by lattices with a narrowing operator.
type Narrower[T any] interface {
	Narrowing(other T) T
}

// Domain is a lattice of program states with transfer functions over expressions.
type Domain[T any] interface {
	Lattice[T]

	Assign(id expr.Identifier, e expr.Expr, pp ProgramPoint, oracle Oracle) (T, error)
	SmallStepSemantics(e expr.Expr, pp ProgramPoint, oracle Oracle) (T, error)
	Assume(e expr.Expr, src, dest ProgramPoint, oracle Oracle) (T, error)
	Satisfies(e expr.Expr, pp ProgramPoint, oracle Oracle) (Satisfiability, error)

	ForgetIdentifier(id expr.Identifier) T
	ForgetIdentifiersIf(test func(expr.Identifier) bool) T
	PushScope(token ScopeToken) T
	PopScope(token ScopeToken) T
	KnowsIdentifier(id expr.Identifier) bool
}

// Check validates an expression handed over by a collaborator.
func Check(e expr.Expr) error {
	if err := expr.Validate(e); err != nil {
		return errors.Wrap(ErrDomainComputation, err.Error())
	}

	return nil
}

// Infeasible is implemented by states that may describe no concrete state while not
// being Bottom in their own order. Products with a single Bottom component are such.
type Infeasible interface {
	Infeasible() bool
}

// Unreachable tells if the state describes no concrete state at all.
func Unreachable[T Lattice[T]](v T) bool {
	if i, ok := any(v).(Infeasible); ok && i.Infeasible() {
		return true
	}

	return v.IsBottom()
}
