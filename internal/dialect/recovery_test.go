package dialect_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"schema-verify/internal/dialect"
)

func TestRecoverConstraints(t *testing.T) {
	sq := &dialect.SQLiteDialect{}

	createSQL := `CREATE TABLE "WORKFLOW_INSTANCE" (
	"INSTANCE_ID" INTEGER NOT NULL,
	"GROUP_ID" BIGINT NOT NULL,
	"BUSINESS_KEY" VARCHAR(64),
	CONSTRAINT UC_WF_BUSINESS_KEY UNIQUE ("GROUP_ID", "BUSINESS_KEY"),
	CONSTRAINT FK_WF_GROUP FOREIGN KEY ("GROUP_ID") REFERENCES "WORKFLOW_GROUP" ("GROUP_ID") ON DELETE CASCADE,
	CONSTRAINT FK_WF_OWNER FOREIGN KEY ("OWNER_ID") REFERENCES "ACCOUNT" ("ACCOUNT_ID"),
	PRIMARY KEY ("INSTANCE_ID")
)`

	got, err := sq.RecoverConstraints(createSQL)
	if err != nil {
		t.Fatalf("RecoverConstraints: %v", err)
	}

	want := &dialect.RecoveredTable{
		Name: "WORKFLOW_INSTANCE",
		Uniques: []dialect.RecoveredUnique{
			{Name: "UC_WF_BUSINESS_KEY", Columns: []string{"GROUP_ID", "BUSINESS_KEY"}},
		},
		ForeignKeys: []dialect.RecoveredForeignKey{
			{
				Name: "FK_WF_GROUP", Column: "GROUP_ID",
				RefTable: "WORKFLOW_GROUP", RefColumn: "GROUP_ID",
				OnUpdate: dialect.Restrict, OnDelete: dialect.Cascade,
			},
			{
				Name: "FK_WF_OWNER", Column: "OWNER_ID",
				RefTable: "ACCOUNT", RefColumn: "ACCOUNT_ID",
				OnUpdate: dialect.Restrict, OnDelete: dialect.Restrict,
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recovered table mismatch (-want +got):\n%s", diff)
	}
}

func TestRecoverConstraints_IgnoresUnmatchedSegments(t *testing.T) {
	sq := &dialect.SQLiteDialect{}

	// two CONSTRAINT segments, only one inside the grammar
	createSQL := `CREATE TABLE EVENT_LOG (
	EVENT_ID INTEGER NOT NULL,
	CONSTRAINT UC_EVENT_NAME UNIQUE (EVENT_NAME),
	CONSTRAINT CK_EVENT_KIND CHECK (EVENT_KIND IN (0, 1))
)`

	got, err := sq.RecoverConstraints(createSQL)
	if err != nil {
		t.Fatalf("RecoverConstraints: %v", err)
	}
	if len(got.Uniques) != 1 || len(got.ForeignKeys) != 0 {
		t.Fatalf("got %d uniques and %d foreign keys, want exactly 1 unique", len(got.Uniques), len(got.ForeignKeys))
	}
	if got.Uniques[0].Name != "UC_EVENT_NAME" {
		t.Errorf("unique name = %q, want UC_EVENT_NAME", got.Uniques[0].Name)
	}
}

func TestRecoverConstraints_NoTableName(t *testing.T) {
	sq := &dialect.SQLiteDialect{}

	_, err := sq.RecoverConstraints(`-- not a table statement`)
	if !errors.Is(err, dialect.ErrUnparseableSchemaText) {
		t.Fatalf("err = %v, want ErrUnparseableSchemaText", err)
	}
}
