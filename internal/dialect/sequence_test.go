package dialect_test

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"schema-verify/internal/dialect"
)

func TestSequenceName_Boundaries(t *testing.T) {
	// The truncation boundaries differ between the table and the column
	// position. These cases pin the observed engine behavior; do not
	// "simplify" them without re-validating against a live instance.
	cases := []struct {
		name   string
		table  string
		column string
		want   string
	}{
		{
			name:   "short names pass through",
			table:  "order",
			column: "id",
			want:   "order_id_seq",
		},
		{
			name:   "names already ending in separator are not padded again",
			table:  "order_",
			column: "id_",
			want:   "order_id_seq",
		},
		// table position: 13 characters is already over the line
		{
			name:   "table at twelve keeps full length",
			table:  "abcdefghijkl",
			column: "id",
			want:   "abcdefghijkl_id_seq",
		},
		{
			name:   "table at thirteen truncates to twelve",
			table:  "abcdefghijklm",
			column: "id",
			want:   "abcdefghijkl_id_seq",
		},
		// column position: 13 survives, 14 drops one, 15 truncates to 12
		{
			name:   "column at thirteen keeps full length",
			table:  "t",
			column: "abcdefghijklm",
			want:   "t_abcdefghijklm_seq",
		},
		{
			name:   "column at fourteen drops the last character",
			table:  "t",
			column: "abcdefghijklmn",
			want:   "t_abcdefghijklm_seq",
		},
		{
			name:   "column at fifteen truncates to twelve",
			table:  "t",
			column: "abcdefghijklmno",
			want:   "t_abcdefghijkl_seq",
		},
		{
			name:   "names are lowercased",
			table:  "WORKFLOW",
			column: "ID",
			want:   "workflow_id_seq",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dialect.SequenceName(tc.table, tc.column)
			if got != tc.want {
				t.Errorf("SequenceName(%q, %q) = %q, want %q", tc.table, tc.column, got, tc.want)
			}
		})
	}
}

func TestSequenceName_Properties(t *testing.T) {
	gofakeit.Seed(11)

	for i := 0; i < 500; i++ {
		table := gofakeit.LetterN(uint(gofakeit.Number(1, 40)))
		column := gofakeit.LetterN(uint(gofakeit.Number(1, 40)))

		first := dialect.SequenceName(table, column)
		second := dialect.SequenceName(table, column)

		if first != second {
			t.Fatalf("SequenceName(%q, %q) not deterministic: %q vs %q", table, column, first, second)
		}
		if len(first) > 30 {
			t.Fatalf("SequenceName(%q, %q) = %q exceeds 30 characters", table, column, first)
		}
		if !strings.HasSuffix(first, "seq") {
			t.Fatalf("SequenceName(%q, %q) = %q does not end in seq", table, column, first)
		}
	}
}
