package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"schema-verify/internal/dialect"
	"schema-verify/internal/schema"
)

const canonicalFixture = `tables:
  - name: WORKFLOW_INSTANCE
    columns:
      - name: INSTANCE_ID
        type: bigint
        size: 64
        autoIncrement: true
      - name: STATE
        type: varchar
        size: 32
        default: "'queued'"
      - name: RETRY_COUNT
        type: integer
        size: 32
        nullable: true
    primaryKey: [INSTANCE_ID]
    uniques:
      - name: UC_WF_STATE_ID
        columns: [STATE, INSTANCE_ID]
    indexes:
      - name: IDX_WF_STATE
        columns: [STATE]
  - name: WORKFLOW_EVENT
    columns:
      - name: EVENT_ID
        type: bigint
        size: 64
        autoIncrement: true
      - name: INSTANCE_ID
        type: bigint
        size: 64
    primaryKey: [EVENT_ID]
    foreignKeys:
      - name: FK_EVENT_INSTANCE
        columns: [INSTANCE_ID]
        refTable: WORKFLOW_INSTANCE
        refColumns: [INSTANCE_ID]
        onDelete: CASCADE
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canonical-schema.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCanonical(t *testing.T) {
	snap, err := schema.LoadCanonical(writeFixture(t, canonicalFixture))
	if err != nil {
		t.Fatalf("LoadCanonical: %v", err)
	}

	wantTables := []string{"WORKFLOW_INSTANCE", "WORKFLOW_EVENT"}
	if diff := cmp.Diff(wantTables, snap.Tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
	if !snap.HasTable("WORKFLOW_INSTANCE") || snap.HasTable("NO_SUCH_TABLE") {
		t.Error("HasTable lookup broken")
	}

	wantColumns := []schema.Column{
		{Table: "WORKFLOW_INSTANCE", Name: "INSTANCE_ID", Type: "BIGINT", Size: 64, AutoInc: true},
		{Table: "WORKFLOW_INSTANCE", Name: "STATE", Type: "VARCHAR", Size: 32, Default: "'queued'"},
		{Table: "WORKFLOW_INSTANCE", Name: "RETRY_COUNT", Type: "INTEGER", Size: 32, Nullable: true},
		{Table: "WORKFLOW_EVENT", Name: "EVENT_ID", Type: "BIGINT", Size: 64, AutoInc: true},
		{Table: "WORKFLOW_EVENT", Name: "INSTANCE_ID", Type: "BIGINT", Size: 64},
	}
	if diff := cmp.Diff(wantColumns, snap.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	pk, ok := snap.PrimaryKey("WORKFLOW_INSTANCE")
	if !ok || len(pk.Columns) != 1 || pk.Columns[0] != "INSTANCE_ID" {
		t.Errorf("primary key = %+v, ok = %v", pk, ok)
	}

	fk, ok := snap.ForeignKey(schema.ObjectKey{Table: "WORKFLOW_EVENT", Name: "FK_EVENT_INSTANCE"})
	if !ok {
		t.Fatal("FK_EVENT_INSTANCE not found")
	}
	if fk.RefTable != "WORKFLOW_INSTANCE" || fk.OnDelete != dialect.Cascade || fk.OnUpdate != dialect.Restrict {
		t.Errorf("foreign key = %+v", fk)
	}

	if _, ok := snap.Unique(schema.ObjectKey{Table: "WORKFLOW_INSTANCE", Name: "UC_WF_STATE_ID"}); !ok {
		t.Error("UC_WF_STATE_ID not found")
	}
	if _, ok := snap.Index(schema.ObjectKey{Table: "WORKFLOW_INSTANCE", Name: "IDX_WF_STATE"}); !ok {
		t.Error("IDX_WF_STATE not found")
	}
}

func TestLoadCanonical_DuplicateColumn(t *testing.T) {
	doc := `tables:
  - name: T
    columns:
      - name: A
        type: integer
        size: 32
      - name: A
        type: integer
        size: 32
`
	_, err := schema.LoadCanonical(writeFixture(t, doc))
	if err == nil || !strings.Contains(err.Error(), "duplicate column") {
		t.Fatalf("err = %v, want duplicate column error", err)
	}
}

func TestLoadCanonical_DuplicateTable(t *testing.T) {
	doc := `tables:
  - name: T
    columns:
      - name: A
        type: integer
        size: 32
  - name: T
    columns:
      - name: B
        type: integer
        size: 32
`
	_, err := schema.LoadCanonical(writeFixture(t, doc))
	if err == nil || !strings.Contains(err.Error(), "duplicate table") {
		t.Fatalf("err = %v, want duplicate table error", err)
	}
}

func TestLoadCanonical_ForeignKeyArityMismatch(t *testing.T) {
	doc := `tables:
  - name: T
    columns:
      - name: A
        type: integer
        size: 32
    foreignKeys:
      - name: FK_T_A
        columns: [A]
        refTable: U
        refColumns: [X, Y]
`
	_, err := schema.LoadCanonical(writeFixture(t, doc))
	if err == nil || !strings.Contains(err.Error(), "column count mismatch") {
		t.Fatalf("err = %v, want column count mismatch error", err)
	}
}
