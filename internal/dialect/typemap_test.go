package dialect_test

import (
	"testing"

	"schema-verify/internal/dialect"
)

const sqliteSentinel = 2000000000

func TestMapType(t *testing.T) {
	cases := []struct {
		name    string
		dialect dialect.ID
		in      dialect.ColumnType
		want    dialect.ColumnType
	}{
		{
			name:    "mysql boolean becomes tinyint(3)",
			dialect: dialect.MySQL,
			in:      dialect.ColumnType{Name: "BOOLEAN"},
			want:    dialect.ColumnType{Name: "TINYINT", Size: 3},
		},
		{
			name:    "mysql integer(32) becomes int(10)",
			dialect: dialect.MySQL,
			in:      dialect.ColumnType{Name: "INTEGER", Size: 32},
			want:    dialect.ColumnType{Name: "INT", Size: 10},
		},
		{
			name:    "mysql unmapped type passes through unchanged",
			dialect: dialect.MySQL,
			in:      dialect.ColumnType{Name: "DECIMAL", Size: 12},
			want:    dialect.ColumnType{Name: "DECIMAL", Size: 12},
		},
		{
			name:    "postgres bigint(64) becomes int8(64)",
			dialect: dialect.Postgres,
			in:      dialect.ColumnType{Name: "BIGINT", Size: 64},
			want:    dialect.ColumnType{Name: "INT8", Size: 64},
		},
		{
			name:    "oracle varchar renames and keeps size",
			dialect: dialect.Oracle,
			in:      dialect.ColumnType{Name: "VARCHAR", Size: 120},
			want:    dialect.ColumnType{Name: "VARCHAR2", Size: 120},
		},
		{
			name:    "sqlserver clob becomes nvarchar(max)",
			dialect: dialect.SQLServer,
			in:      dialect.ColumnType{Name: "CLOB"},
			want:    dialect.ColumnType{Name: "NVARCHAR", Size: -1},
		},
		{
			name:    "sqlite bigint(64) collapses to integer with sentinel size",
			dialect: dialect.SQLite,
			in:      dialect.ColumnType{Name: "BIGINT", Size: 64},
			want:    dialect.ColumnType{Name: "INTEGER", Size: sqliteSentinel},
		},
		{
			name:    "sqlite varchar keeps the length inside the type name",
			dialect: dialect.SQLite,
			in:      dialect.ColumnType{Name: "VARCHAR", Size: 255},
			want:    dialect.ColumnType{Name: "VARCHAR(255)", Size: sqliteSentinel},
		},
		{
			name:    "sqlite varchar of another length maps the same way",
			dialect: dialect.SQLite,
			in:      dialect.ColumnType{Name: "VARCHAR", Size: 36},
			want:    dialect.ColumnType{Name: "VARCHAR(36)", Size: sqliteSentinel},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := dialect.GetDialect(tc.dialect)
			if err != nil {
				t.Fatalf("GetDialect(%v): %v", tc.dialect, err)
			}
			got := d.MapType(tc.in)
			if got != tc.want {
				t.Errorf("MapType(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
			// mapping must not depend on prior calls
			if again := d.MapType(tc.in); again != got {
				t.Errorf("MapType(%+v) not pure: %+v then %+v", tc.in, got, again)
			}
		})
	}
}

func TestMapDefault(t *testing.T) {
	mysql := &dialect.MysqlDialect{}
	if got := mysql.MapDefault(dialect.ColumnType{Name: "TINYINT", Size: 3}, "true"); got != "1" {
		t.Errorf("mysql boolean true default = %q, want \"1\"", got)
	}
	if got := mysql.MapDefault(dialect.ColumnType{Name: "DATETIME"}, "NOW()"); got != "CURRENT_TIMESTAMP" {
		t.Errorf("mysql NOW() default = %q, want CURRENT_TIMESTAMP", got)
	}
	if got := mysql.MapDefault(dialect.ColumnType{Name: "INT", Size: 10}, "42"); got != "42" {
		t.Errorf("mysql unmapped default = %q, want unchanged \"42\"", got)
	}

	pg := &dialect.PostgresDialect{}
	if got := pg.MapDefault(dialect.ColumnType{Name: "VARCHAR", Size: 50}, "'queued'"); got != "'queued'::character varying" {
		t.Errorf("postgres varchar literal default = %q", got)
	}
}

func TestIsNullDefault(t *testing.T) {
	pg := &dialect.PostgresDialect{}
	for _, raw := range []string{"", "NULL", "NULL::character varying"} {
		if !pg.IsNullDefault(raw) {
			t.Errorf("postgres IsNullDefault(%q) = false, want true", raw)
		}
	}
	if pg.IsNullDefault("0") {
		t.Error("postgres IsNullDefault(\"0\") = true, want false")
	}
}

func TestPostgresAutoIncExpected_VersionGate(t *testing.T) {
	pg := &dialect.PostgresDialect{}
	declared := dialect.ColumnType{Name: "BIGINT", Size: 64}

	legacy := dialect.ConnInfo{Dialect: dialect.Postgres, MajorVersion: 9}
	typ, def := pg.AutoIncExpected("WORKFLOW_INSTANCE", "INSTANCE_ID", declared, "", legacy)
	if typ != (dialect.ColumnType{Name: "INT8", Size: 64}) {
		t.Errorf("legacy auto-increment type = %+v, want INT8(64)", typ)
	}
	wantDef := "nextval('" + dialect.SequenceName("WORKFLOW_INSTANCE", "INSTANCE_ID") + "'::regclass)"
	if def != wantDef {
		t.Errorf("legacy auto-increment default = %q, want %q", def, wantDef)
	}

	modern := dialect.ConnInfo{Dialect: dialect.Postgres, MajorVersion: 14}
	typ, def = pg.AutoIncExpected("WORKFLOW_INSTANCE", "INSTANCE_ID", declared, "", modern)
	if typ != (dialect.ColumnType{Name: "INT8", Size: 64}) {
		t.Errorf("identity column type = %+v, want INT8(64)", typ)
	}
	if def != "" {
		t.Errorf("identity column default = %q, want empty", def)
	}
}

func TestSQLiteAutoIncExpected(t *testing.T) {
	sq := &dialect.SQLiteDialect{}
	typ, _ := sq.AutoIncExpected("T", "ID", dialect.ColumnType{Name: "BIGINT", Size: 64}, "", dialect.ConnInfo{Dialect: dialect.SQLite})
	if typ != (dialect.ColumnType{Name: "INTEGER", Size: sqliteSentinel}) {
		t.Errorf("sqlite auto-increment type = %+v, want INTEGER(%d)", typ, sqliteSentinel)
	}
}
