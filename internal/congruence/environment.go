package congruence

import (
	"github.com/sirkon/absint/internal/lattice"
	"github.com/sirkon/absint/internal/nonrel"
)

// Environment is the congruence domain over program states.
type Environment = nonrel.Environment[Value]

// NewEnvironment returns the state knowing nothing.
func NewEnvironment() Environment {
	return nonrel.Top[Value]()
}

var (
	_ lattice.Domain[Environment] = Environment{}
	_ lattice.Meeter[Value]       = Value{}
	_ lattice.Narrower[Value]     = Value{}
	_ nonrel.Refiner[Value]       = Value{}
)
