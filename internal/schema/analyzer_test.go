package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"schema-verify/internal/dialect"
	"schema-verify/internal/schema"
)

func fkRow(table, name, column, refTable, refColumn string) schema.ForeignKey {
	return schema.ForeignKey{
		Name:     name,
		Table:    table,
		RefTable: refTable,
		Columns:  []schema.ColumnPair{{Foreign: column, Primary: refColumn}},
		OnUpdate: dialect.Restrict,
		OnDelete: dialect.Restrict,
	}
}

func TestGroupForeignKeyRows_CompositeKey(t *testing.T) {
	rows := []schema.ForeignKey{
		fkRow("JOB_RUN", "FK_RUN_JOB", "GROUP_ID", "JOB", "GROUP_ID"),
		fkRow("JOB_RUN", "FK_RUN_JOB", "JOB_ID", "JOB", "JOB_ID"),
	}

	got := schema.GroupForeignKeyRows(rows)
	if len(got) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(got))
	}
	wantPairs := []schema.ColumnPair{
		{Foreign: "GROUP_ID", Primary: "GROUP_ID"},
		{Foreign: "JOB_ID", Primary: "JOB_ID"},
	}
	if diff := cmp.Diff(wantPairs, got[0].Columns); diff != "" {
		t.Errorf("column pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupForeignKeyRows_NamelessKeysStayDistinct(t *testing.T) {
	// nameless rows must never merge: a name-losing engine reports two
	// separate keys on one table exactly like one composite key
	rows := []schema.ForeignKey{
		fkRow("JOB_RUN", "", "JOB_ID", "JOB", "JOB_ID"),
		fkRow("JOB_RUN", "", "OWNER_ID", "ACCOUNT", "ACCOUNT_ID"),
	}

	got := schema.GroupForeignKeyRows(rows)
	if len(got) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(got))
	}
	if got[0].RefTable != "JOB" || got[1].RefTable != "ACCOUNT" {
		t.Errorf("descriptors merged: %+v", got)
	}
	for _, fk := range got {
		if len(fk.Columns) != 1 {
			t.Errorf("nameless key %v accumulated %d pairs, want 1", fk.RefTable, len(fk.Columns))
		}
	}
}

func TestGroupForeignKeyRows_Mixed(t *testing.T) {
	rows := []schema.ForeignKey{
		fkRow("JOB_RUN", "FK_RUN_JOB", "JOB_ID", "JOB", "JOB_ID"),
		fkRow("EVENT_LOG", "", "RUN_ID", "JOB_RUN", "RUN_ID"),
		fkRow("EVENT_LOG", "", "JOB_ID", "JOB", "JOB_ID"),
		fkRow("JOB_RUN", "FK_RUN_OWNER", "OWNER_ID", "ACCOUNT", "ACCOUNT_ID"),
	}

	got := schema.GroupForeignKeyRows(rows)
	if len(got) != 4 {
		t.Fatalf("got %d descriptors, want 4", len(got))
	}
}
