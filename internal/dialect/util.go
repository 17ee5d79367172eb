package dialect

// Canonical "no default" spellings. The canonical snapshot producer encodes
// an absent default in several ways depending on how the column was
// declared: an empty value, the boolean-false sentinel, the string NULL, or
// the null-returning function marker. Any one of them means the same thing.
var canonicalNoDefault = []string{"", "false", "NULL", "NULL()"}

// IsNoDefault reports whether a canonical raw default means "no default".
func IsNoDefault(raw string) bool {
	return inSet(canonicalNoDefault, raw)
}

// mappedAutoInc is the auto-increment expectation shared by every engine
// that does not materialize backing sequences: the expected type is the
// dialect-mapped canonical type and the expected default is the
// dialect-mapped canonical default.
func mappedAutoInc(d Dialect, t ColumnType, canonicalDefault string) (ColumnType, string) {
	mapped := d.MapType(t)
	return mapped, d.MapDefault(mapped, canonicalDefault)
}
