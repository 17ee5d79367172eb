package dialect

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnparseableSchemaText reports table-creation text outside the expected
// grammar. This is a contract violation by the upstream snapshot producer,
// not a comparison failure, so it aborts the dialect run.
var ErrUnparseableSchemaText = errors.New("unparseable schema text")

// RecoveredUnique is a unique constraint rebuilt from creation text.
type RecoveredUnique struct {
	Name    string
	Columns []string
}

// RecoveredForeignKey is a foreign key rebuilt from creation text. The
// grammar only ever declares single-column keys.
type RecoveredForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
	OnUpdate  Rule
	OnDelete  Rule
}

// RecoveredTable is the result of parsing one table-creation statement.
type RecoveredTable struct {
	Name        string
	Uniques     []RecoveredUnique
	ForeignKeys []RecoveredForeignKey
}

var (
	createTablePattern = regexp.MustCompile(`(?i)CREATE\s+(?:TEMP\s+|TEMPORARY\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?["']?([A-Za-z0-9_]+)["']?`)
	uniquePattern      = regexp.MustCompile(`^\s*(UC_[A-Za-z0-9_]+)\s+UNIQUE\s*\(([^)]+)\)`)
	foreignKeyPattern  = regexp.MustCompile(`^\s*(FK_[A-Za-z0-9_]+)\s+FOREIGN\s+KEY\s*\(\s*["']?([A-Za-z0-9_]+)["']?\s*\)\s*REFERENCES\s+["']?([A-Za-z0-9_]+)["']?\s*\(\s*["']?([A-Za-z0-9_]+)["']?\s*\)\s*(ON\s+DELETE\s+CASCADE)?`)
)

// recoverConstraints rebuilds unique-constraint and foreign-key descriptors
// from a table-creation statement. The statement is split on CONSTRAINT; the
// first segment must yield the table name, each remaining segment either
// matches one of the two constraint patterns or yields nothing (column lists
// and other constraint kinds live in those segments too).
func recoverConstraints(createSQL string) (*RecoveredTable, error) {
	segments := strings.Split(createSQL, "CONSTRAINT")

	m := createTablePattern.FindStringSubmatch(segments[0])
	if m == nil {
		return nil, fmt.Errorf("%w: no table name in %q", ErrUnparseableSchemaText, segments[0])
	}
	table := &RecoveredTable{Name: m[1]}

	for _, seg := range segments[1:] {
		if um := uniquePattern.FindStringSubmatch(seg); um != nil {
			table.Uniques = append(table.Uniques, RecoveredUnique{
				Name:    um[1],
				Columns: splitColumnList(um[2]),
			})
			continue
		}
		if fm := foreignKeyPattern.FindStringSubmatch(seg); fm != nil {
			onDelete := Restrict
			if fm[5] != "" {
				onDelete = Cascade
			}
			table.ForeignKeys = append(table.ForeignKeys, RecoveredForeignKey{
				Name:      fm[1],
				Column:    fm[2],
				RefTable:  fm[3],
				RefColumn: fm[4],
				// the engine does not support configurable update actions
				OnUpdate: Restrict,
				OnDelete: onDelete,
			})
		}
	}

	return table, nil
}

func splitColumnList(list string) []string {
	parts := strings.Split(list, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		cols = append(cols, strings.Trim(strings.TrimSpace(p), `"'`))
	}
	return cols
}
