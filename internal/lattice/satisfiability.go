package lattice

import (
	"fmt"
)

// Satisfiability is a three-valued answer to "does the condition hold".
type Satisfiability int

const (
	// Unknown means the abstraction cannot decide. It is the zero value.
	Unknown Satisfiability = iota

	// Satisfied means the condition holds in every concrete state.
	Satisfied

	// NotSatisfied means the condition holds in no concrete state.
	NotSatisfied
)

func (s Satisfiability) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Satisfied:
		return "satisfied"
	case NotSatisfied:
		return "not-satisfied"
	default:
		return fmt.Sprintf("satisfiability-invalid(%d)", s)
	}
}

// Negate answers for the negated condition.
func (s Satisfiability) Negate() Satisfiability {
	switch s {
	case Satisfied:
		return NotSatisfied
	case NotSatisfied:
		return Satisfied
	default:
		return Unknown
	}
}

// Glb combines two answers about the same state: a decided answer wins over Unknown.
// Sound domains never contradict each other, a contradiction degrades to Unknown.
func (s Satisfiability) Glb(other Satisfiability) Satisfiability {
	switch {
	case s == Unknown:
		return other
	case other == Unknown, s == other:
		return s
	default:
		return Unknown
	}
}

// Lub combines answers about two alternative states: only a shared answer survives.
func (s Satisfiability) Lub(other Satisfiability) Satisfiability {
	if s == other {
		return s
	}

	return Unknown
}

// FromBool maps a decided comparison.
func FromBool(v bool) Satisfiability {
	if v {
		return Satisfied
	}

	return NotSatisfied
}
