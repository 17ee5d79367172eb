package dialect

import "strings"

// The engine materializes a backing sequence per auto-increment column and
// derives its name from the table and column name under a 30-character
// identifier limit. The shortening boundaries below were recovered from
// observed engine behavior; table and column names truncate differently at
// the boundary, so the two helpers must not be merged.
const (
	seqSuffix    = "seq"
	seqNameLimit = 30
	// Per-name budget. With the trailing separators and the suffix the full
	// identifier stays within seqNameLimit.
	seqPartLimit = 13
)

// SequenceName derives the implicit sequence name backing an auto-increment
// column. Deterministic and idempotent: the result only depends on the two
// inputs, is at most 30 characters long and always ends in "seq".
func SequenceName(table, column string) string {
	t := padName(shortenTableName(strings.ToLower(table)))
	c := padName(shortenColumnName(strings.ToLower(column)))
	return t + c + seqSuffix
}

func shortenTableName(name string) string {
	if len(name) < seqPartLimit {
		return name
	}
	return name[:seqPartLimit-1]
}

func shortenColumnName(name string) string {
	switch {
	case len(name) < seqPartLimit:
		return name
	case len(name) == seqPartLimit:
		// exactly at the limit keeps full length
		return name
	case len(name) == seqPartLimit+1:
		// one over the limit drops the last character
		return name[:len(name)-1]
	default:
		return name[:seqPartLimit-1]
	}
}

func padName(name string) string {
	if strings.HasSuffix(name, "_") {
		return name
	}
	return name + "_"
}
