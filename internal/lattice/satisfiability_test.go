package lattice

import (
	"errors"
	"testing"

	"github.com/sirkon/absint/internal/expr"
)

func TestSatisfiabilityGlb(t *testing.T) {
	tests := []struct {
		a, b, want Satisfiability
	}{
		{Unknown, Unknown, Unknown},
		{Unknown, Satisfied, Satisfied},
		{NotSatisfied, Unknown, NotSatisfied},
		{Satisfied, Satisfied, Satisfied},
		{Satisfied, NotSatisfied, Unknown},
	}

	for _, tt := range tests {
		if got := tt.a.Glb(tt.b); got != tt.want {
			t.Errorf("%s ⊓ %s: got %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSatisfiabilityNegateLub(t *testing.T) {
	if Satisfied.Negate() != NotSatisfied || NotSatisfied.Negate() != Satisfied || Unknown.Negate() != Unknown {
		t.Fatal("negation must swap decided answers and keep unknown")
	}
	if Satisfied.Lub(NotSatisfied) != Unknown || Satisfied.Lub(Satisfied) != Satisfied {
		t.Fatal("lub must keep only shared answers")
	}
}

func TestCheck(t *testing.T) {
	if err := Check(expr.Ident("x")); err != nil {
		t.Fatalf("unexpected error %s", err)
	}

	err := Check(expr.Bin(expr.OpAdd, nil, expr.Int(1)))
	if err == nil {
		t.Fatal("error was expected")
	}
	if !errors.Is(err, ErrDomainComputation) {
		t.Fatalf("domain computation error was expected, got %s", err)
	}
}
