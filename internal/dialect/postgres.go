package dialect

import (
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) ID() ID { return Postgres }

func (d *PostgresDialect) VersionQuery() string {
	// SHOW takes no bind parameters; current_setting does the same job and
	// lets the query consume the schema bind like every other query
	return `SELECT current_setting('server_version') WHERE $1 IS NOT NULL`
}

func (d *PostgresDialect) TablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE'`
}

func (d *PostgresDialect) ColumnsQuery() string {
	// UDT_NAME is more faithful than DATA_TYPE ("int4" rather than
	// "integer"), and it is what the engine reports back through drivers.
	return `SELECT c.table_name, c.column_name, UPPER(c.udt_name),
	COALESCE(c.character_maximum_length, c.numeric_precision),
	c.is_nullable,
	CASE WHEN c.column_default LIKE 'nextval(%' OR c.is_identity = 'YES' THEN 'nextval' ELSE '' END,
	c.column_default
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) PrimaryKeysQuery() string {
	return `SELECT kcu.table_name, kcu.column_name
FROM information_schema.key_column_usage kcu
JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name
	AND kcu.table_schema = tc.table_schema
WHERE kcu.table_schema = $1 AND tc.constraint_type = 'PRIMARY KEY'
ORDER BY kcu.table_name, kcu.ordinal_position`
}

func (d *PostgresDialect) ForeignKeysQuery() string {
	return `SELECT kcu.table_name, kcu.constraint_name, kcu.column_name,
	ccu.table_name, ccu.column_name,
	rc.update_rule, rc.delete_rule,
	CASE tc.is_deferrable WHEN 'YES' THEN 'YES' ELSE 'NO' END,
	CASE tc.initially_deferred WHEN 'YES' THEN 'YES' ELSE 'NO' END
FROM information_schema.key_column_usage kcu
JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name
	AND kcu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc ON kcu.constraint_name = rc.constraint_name
	AND kcu.table_schema = rc.constraint_schema
JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name
	AND kcu.table_schema = ccu.table_schema
WHERE kcu.table_schema = $1 AND tc.constraint_type = 'FOREIGN KEY'
ORDER BY kcu.table_name, kcu.constraint_name, kcu.ordinal_position`
}

func (d *PostgresDialect) UniqueConstraintsQuery() string {
	return `SELECT kcu.table_name, kcu.constraint_name, kcu.column_name
FROM information_schema.key_column_usage kcu
JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name
	AND kcu.table_schema = tc.table_schema
WHERE kcu.table_schema = $1 AND tc.constraint_type = 'UNIQUE'
ORDER BY kcu.table_name, kcu.constraint_name, kcu.ordinal_position`
}

func (d *PostgresDialect) IndexesQuery() string {
	return `SELECT t.relname, i.relname,
	CASE WHEN ix.indisunique THEN 0 ELSE 1 END,
	a.attname
FROM pg_class t
JOIN pg_index ix ON t.oid = ix.indrelid
JOIN pg_class i ON i.oid = ix.indexrelid
JOIN pg_namespace n ON n.oid = t.relnamespace
JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
WHERE t.relkind = 'r' AND n.nspname = $1
ORDER BY t.relname, i.relname, array_position(ix.indkey, a.attnum)`
}

func (d *PostgresDialect) TableDDLQuery() string {
	return ""
}

func (d *PostgresDialect) DefaultSchema(database string) string {
	return "public"
}

var postgresTypeRules = []typeRule{
	exactRule{from: ColumnType{Name: "BOOLEAN"}, to: ColumnType{Name: "BOOL"}},
	exactRule{from: ColumnType{Name: "SMALLINT", Size: 16}, to: ColumnType{Name: "INT2", Size: 16}},
	exactRule{from: ColumnType{Name: "INTEGER", Size: 32}, to: ColumnType{Name: "INT4", Size: 32}},
	exactRule{from: ColumnType{Name: "BIGINT", Size: 64}, to: ColumnType{Name: "INT8", Size: 64}},
	exactRule{from: ColumnType{Name: "CLOB"}, to: ColumnType{Name: "TEXT"}},
	exactRule{from: ColumnType{Name: "TIMESTAMP"}, to: ColumnType{Name: "TIMESTAMP", Size: 6}},
	identityRule{},
}

var postgresDefaults = map[defaultKey]string{
	{typeName: "BOOL", canonical: "true"}:       "true",
	{typeName: "BOOL", canonical: "false"}:      "false",
	{typeName: "TIMESTAMP", canonical: "NOW()"}: "now()",
}

var postgresNullDefaults = []string{"", "NULL", "NULL::character varying", "NULL::text"}

func (d *PostgresDialect) MapType(t ColumnType) ColumnType {
	return applyTypeRules(postgresTypeRules, t)
}

func (d *PostgresDialect) MapDefault(mapped ColumnType, canonicalDefault string) string {
	if mapped.Name == "VARCHAR" && !IsNoDefault(canonicalDefault) &&
		!strings.HasSuffix(canonicalDefault, ")") {
		// string literals echo back cast-qualified
		return fmt.Sprintf("'%s'::character varying", strings.Trim(canonicalDefault, "'"))
	}
	return lookupDefault(postgresDefaults, mapped, canonicalDefault)
}

func (d *PostgresDialect) IsNullDefault(raw string) bool {
	return inSet(postgresNullDefaults, raw)
}

// AutoIncExpected is version-gated. Through major version 9 the engine
// stores auto-increment columns as plain integers backed by an implicit
// sequence, so the expected type is the widened integer form and the
// expected default references the derived sequence through a cast-qualified
// nextval call. From version 10 on, identity columns report the mapped
// canonical default like every other engine.
func (d *PostgresDialect) AutoIncExpected(table, column string, t ColumnType, canonicalDefault string, conn ConnInfo) (ColumnType, string) {
	if conn.MajorVersion > 9 {
		return mappedAutoInc(d, t, canonicalDefault)
	}

	widened := ColumnType{Name: "INT4", Size: 32}
	if t.Name == "BIGINT" || t.Size >= 64 {
		widened = ColumnType{Name: "INT8", Size: 64}
	}
	return widened, fmt.Sprintf("nextval('%s'::regclass)", SequenceName(table, column))
}

func (d *PostgresDialect) GeneratedIndexName(name string) bool {
	return strings.HasSuffix(name, "_pkey") || strings.HasSuffix(name, "_key")
}
