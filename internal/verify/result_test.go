package verify_test

import (
	"testing"

	"schema-verify/internal/schema"
	"schema-verify/internal/verify"
)

func TestCheckResultString(t *testing.T) {
	ok := verify.CheckResult{
		Kind:   verify.KindColumn,
		Object: schema.ObjectKey{Table: "JOB", Name: "NAME"},
	}
	if got, want := ok.String(), "[OK]   column JOB.NAME"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	fail := verify.CheckResult{
		Kind:   verify.KindForeignKey,
		Object: schema.ObjectKey{Table: "JOB_RUN", Name: "FK_RUN_JOB"},
		Failure: &verify.Failure{
			Code:     verify.ConstraintShapeMismatch,
			Field:    "delete rule",
			Expected: "CASCADE",
			Actual:   "RESTRICT",
		},
	}
	want := `[FAIL] foreign key JOB_RUN.FK_RUN_JOB: ConstraintShapeMismatch (delete rule): expected "CASCADE", got "RESTRICT"`
	if got := fail.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if fail.Passed() {
		t.Error("failing result reports Passed")
	}
}
