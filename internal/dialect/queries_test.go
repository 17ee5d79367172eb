package dialect_test

import (
	"strings"
	"testing"

	"schema-verify/internal/dialect"
)

// Every introspection query takes the schema name as its single bind
// parameter. A query that declares no placeholder breaks at execution time:
// the mysql and postgres drivers reject surplus arguments on the prepared
// path, so the contract has to hold for every query of every dialect.
func TestQueriesConsumeSchemaBind(t *testing.T) {
	placeholders := map[dialect.ID]string{
		dialect.MySQL:     "?",
		dialect.Postgres:  "$1",
		dialect.Oracle:    ":1",
		dialect.SQLServer: "@p1",
		dialect.SQLite:    "?",
	}

	for id, ph := range placeholders {
		d, err := dialect.GetDialect(id)
		if err != nil {
			t.Fatalf("GetDialect(%v): %v", id, err)
		}

		queries := map[string]string{
			"VersionQuery":           d.VersionQuery(),
			"TablesQuery":            d.TablesQuery(),
			"ColumnsQuery":           d.ColumnsQuery(),
			"PrimaryKeysQuery":       d.PrimaryKeysQuery(),
			"ForeignKeysQuery":       d.ForeignKeysQuery(),
			"UniqueConstraintsQuery": d.UniqueConstraintsQuery(),
			"IndexesQuery":           d.IndexesQuery(),
			"TableDDLQuery":          d.TableDDLQuery(),
		}
		for name, q := range queries {
			if name == "TableDDLQuery" && q == "" {
				// empty means the engine retains no creation text
				continue
			}
			if got := strings.Count(q, ph); got != 1 {
				t.Errorf("%s.%s contains %d occurrences of %q, want exactly 1:\n%s", id, name, got, ph, q)
			}
		}
	}
}
