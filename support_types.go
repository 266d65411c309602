package absint

import (
	"fmt"
)

// DomainKind selects the abstract domain programs are interpreted with.
type DomainKind int

const (
	DomainKindInvalid DomainKind = iota

	// DomainKindInterval tracks a range per integer variable.
	DomainKindInterval

	// DomainKindCongruence tracks a residue class per integer variable.
	DomainKindCongruence

	// DomainKindEquality tracks which variables hold the same value.
	DomainKindEquality

	// DomainKindPentagon tracks ranges together with strict order between variables.
	DomainKindPentagon

	// DomainKindCongEq tracks residue classes together with equalities.
	DomainKindCongEq
)

var domainKindValueMap = map[DomainKind]string{
	DomainKindInterval:   "interval",
	DomainKindCongruence: "congruence",
	DomainKindEquality:   "equality",
	DomainKindPentagon:   "pentagon",
	DomainKindCongEq:     "congeq",
}

func (k DomainKind) String() string {
	v, ok := domainKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

// UnmarshalText for setting values with configs, CLI, etc.
func (k *DomainKind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for kind, v := range domainKindValueMap {
		if v == text {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown domain %q", text)
}

func (k DomainKind) MarshalText() ([]byte, error) {
	v, ok := domainKindValueMap[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid DomainKind(%d)", k)
	}

	return []byte(v), nil
}

// DomainKinds lists names of all supported domains.
func DomainKinds() []string {
	return []string{
		DomainKindInterval.String(),
		DomainKindCongruence.String(),
		DomainKindEquality.String(),
		DomainKindPentagon.String(),
		DomainKindCongEq.String(),
	}
}
