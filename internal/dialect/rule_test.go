package dialect_test

import (
	"testing"

	"schema-verify/internal/dialect"
)

func TestParseRule(t *testing.T) {
	cases := []struct {
		in   string
		want dialect.Rule
	}{
		{"NO ACTION", dialect.NoAction},
		{"NO_ACTION", dialect.NoAction},
		{"no action", dialect.NoAction},
		{"CASCADE", dialect.Cascade},
		{"SET NULL", dialect.SetNull},
		{"SET_DEFAULT", dialect.SetDefault},
		{"RESTRICT", dialect.Restrict},
		{"", dialect.Restrict},
		{"3", dialect.Restrict},
	}
	for _, tc := range cases {
		if got := dialect.ParseRule(tc.in); got != tc.want {
			t.Errorf("ParseRule(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRulesEquivalent(t *testing.T) {
	if !dialect.RulesEquivalent(dialect.Restrict, dialect.NoAction) {
		t.Error("RESTRICT and NO ACTION must compare equivalent")
	}
	if !dialect.RulesEquivalent(dialect.NoAction, dialect.Restrict) {
		t.Error("equivalence must be symmetric")
	}
	if dialect.RulesEquivalent(dialect.Restrict, dialect.Cascade) {
		t.Error("RESTRICT and CASCADE must not compare equivalent")
	}
	if !dialect.RulesEquivalent(dialect.Cascade, dialect.Cascade) {
		t.Error("a rule must compare equivalent to itself")
	}
}
