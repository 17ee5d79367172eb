package verify

import (
	"fmt"

	"schema-verify/internal/schema"
)

// ObjectKind orders the report: columns first, then primary keys, foreign
// keys, unique constraints and indexes.
type ObjectKind int

const (
	KindColumn ObjectKind = iota
	KindPrimaryKey
	KindForeignKey
	KindUnique
	KindIndex
)

func (k ObjectKind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindPrimaryKey:
		return "primary key"
	case KindForeignKey:
		return "foreign key"
	case KindUnique:
		return "unique constraint"
	case KindIndex:
		return "index"
	}
	return "object"
}

// FailureCode classifies a failing check.
type FailureCode int

const (
	ObjectNotFound FailureCode = iota
	TypeMismatch
	DefaultValueMismatch
	NullabilityMismatch
	AutoIncrementMismatch
	ConstraintShapeMismatch
	SupplementalQueryMismatch
	DialectQueryFailure
)

func (c FailureCode) String() string {
	switch c {
	case ObjectNotFound:
		return "ObjectNotFound"
	case TypeMismatch:
		return "TypeMismatch"
	case DefaultValueMismatch:
		return "DefaultValueMismatch"
	case NullabilityMismatch:
		return "NullabilityMismatch"
	case AutoIncrementMismatch:
		return "AutoIncrementMismatch"
	case ConstraintShapeMismatch:
		return "ConstraintShapeMismatch"
	case SupplementalQueryMismatch:
		return "SupplementalQueryMismatch"
	case DialectQueryFailure:
		return "DialectQueryFailure"
	}
	return "Unknown"
}

// Failure carries the divergence details of one failing check. Field names
// the diverging sub-field for constraint-shape failures.
type Failure struct {
	Code     FailureCode
	Field    string
	Expected string
	Actual   string
}

// CheckResult is the outcome of verifying one canonical object against the
// live snapshot. A nil Failure means the check passed.
type CheckResult struct {
	Kind    ObjectKind
	Object  schema.ObjectKey
	Failure *Failure
}

func (r CheckResult) Passed() bool {
	return r.Failure == nil
}

func (r CheckResult) String() string {
	if r.Failure == nil {
		return fmt.Sprintf("[OK]   %s %s", r.Kind, r.Object)
	}
	f := r.Failure
	if f.Field != "" {
		return fmt.Sprintf("[FAIL] %s %s: %s (%s): expected %q, got %q",
			r.Kind, r.Object, f.Code, f.Field, f.Expected, f.Actual)
	}
	return fmt.Sprintf("[FAIL] %s %s: %s: expected %q, got %q",
		r.Kind, r.Object, f.Code, f.Expected, f.Actual)
}
