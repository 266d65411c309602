package absrules

import (
	"testing"
)

func TestRuleRendering(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{rule: ConditionAlwaysTrue(), want: "ABS001: ConditionAlwaysTrue"},
		{rule: ConditionAlwaysFalse(), want: "ABS002: ConditionAlwaysFalse"},
		{rule: DivisionByZero(), want: "ABS010: DivisionByZero"},
		{rule: ruleInvalid, want: "rule-unknown(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.rule.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuleUnmarshalText(t *testing.T) {
	for _, r := range All() {
		var code, name Rule
		if err := code.UnmarshalText([]byte(r.Code())); err != nil {
			t.Fatalf("decode %s: %s", r.Code(), err)
		}
		if code != r {
			t.Errorf("code %s decoded into %s", r.Code(), code)
		}

		if err := name.UnmarshalText([]byte(ruleNames[r])); err != nil {
			t.Fatalf("decode %s: %s", ruleNames[r], err)
		}
		if name != r {
			t.Errorf("name %s decoded into %s", ruleNames[r], name)
		}
	}

	var r Rule
	if err := r.UnmarshalText([]byte(" abs010 ")); err != nil || r != DivisionByZero() {
		t.Errorf("case-insensitive code with spaces must decode, got %s (%v)", r, err)
	}
	if err := r.UnmarshalText([]byte("CER000")); err == nil {
		t.Error("error was expected for an unknown code")
	}
}

func TestForCondition(t *testing.T) {
	if ForCondition(true) != ConditionAlwaysTrue() {
		t.Error("condition that holds must map to ABS001")
	}
	if ForCondition(false) != ConditionAlwaysFalse() {
		t.Error("condition that fails must map to ABS002")
	}
	for _, r := range All() {
		if r.Description() == "" {
			t.Errorf("rule %s has no description", r)
		}
	}
}
