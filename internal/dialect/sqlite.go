package dialect

import "strings"

// SQLiteDialect also serves as the in-memory reference engine: migrations
// are applied to a fresh in-memory database and the result is verified like
// any production target.
type SQLiteDialect struct{}

// The engine ignores declared lengths at storage time and reports this
// fixed oversized value as the size of every mapped column instead.
const sqliteSizeSentinel = 2000000000

func (d *SQLiteDialect) ID() ID { return SQLite }

func (d *SQLiteDialect) VersionQuery() string {
	return `SELECT sqlite_version() WHERE ? IS NOT NULL`
}

func (d *SQLiteDialect) TablesQuery() string {
	return `SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY name`
}

func (d *SQLiteDialect) ColumnsQuery() string {
	// The pragma table-valued functions keep the row contract uniform with
	// the information_schema engines. The reported size is always the
	// sentinel; declared lengths only survive inside the type name.
	return `SELECT m.name, ti.name, UPPER(ti.type), 2000000000,
	CASE ti."notnull" WHEN 0 THEN 'YES' ELSE 'NO' END,
	CASE WHEN ti.pk = 1 AND UPPER(ti.type) = 'INTEGER' THEN 'auto_increment' ELSE '' END,
	ti.dflt_value
FROM sqlite_master m
JOIN pragma_table_info(m.name) ti
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, ti.cid`
}

func (d *SQLiteDialect) PrimaryKeysQuery() string {
	return `SELECT m.name, ti.name
FROM sqlite_master m
JOIN pragma_table_info(m.name) ti
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ti.pk > 0 AND ? IS NOT NULL
ORDER BY m.name, ti.pk`
}

func (d *SQLiteDialect) ForeignKeysQuery() string {
	// pragma_foreign_key_list reports no constraint names; every row comes
	// back with an empty name, which makes the generic list unusable and
	// forces the comparator onto RecoverConstraints.
	return `SELECT m.name, '', fk."from", fk."table", fk."to",
	fk.on_update, fk.on_delete, 'NO', 'NO'
FROM sqlite_master m
JOIN pragma_foreign_key_list(m.name) fk
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, fk.id, fk.seq`
}

func (d *SQLiteDialect) UniqueConstraintsQuery() string {
	// Unique constraints surface only as their backing indexes (origin 'u'),
	// again without the declared constraint names. Recovery applies.
	return `SELECT m.name, il.name, ii.name
FROM sqlite_master m
JOIN pragma_index_list(m.name) il
JOIN pragma_index_info(il.name) ii
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND il.origin = 'u' AND ? IS NOT NULL
ORDER BY m.name, il.name, ii.seqno`
}

func (d *SQLiteDialect) IndexesQuery() string {
	return `SELECT m.name, il.name,
	CASE il."unique" WHEN 1 THEN 0 ELSE 1 END,
	ii.name
FROM sqlite_master m
JOIN pragma_index_list(m.name) il
JOIN pragma_index_info(il.name) ii
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, il.name, ii.seqno`
}

func (d *SQLiteDialect) TableDDLQuery() string {
	return `SELECT name, sql FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND sql IS NOT NULL AND ? IS NOT NULL
ORDER BY name`
}

func (d *SQLiteDialect) DefaultSchema(database string) string {
	return "main"
}

var sqliteTypeRules = []typeRule{
	exactRule{from: ColumnType{Name: "SMALLINT", Size: 16}, to: ColumnType{Name: "INTEGER", Size: sqliteSizeSentinel}},
	exactRule{from: ColumnType{Name: "INTEGER", Size: 32}, to: ColumnType{Name: "INTEGER", Size: sqliteSizeSentinel}},
	exactRule{from: ColumnType{Name: "BIGINT", Size: 64}, to: ColumnType{Name: "INTEGER", Size: sqliteSizeSentinel}},
	exactRule{from: ColumnType{Name: "BOOLEAN"}, to: ColumnType{Name: "BOOLEAN", Size: sqliteSizeSentinel}},
	exactRule{from: ColumnType{Name: "CLOB"}, to: ColumnType{Name: "TEXT", Size: sqliteSizeSentinel}},
	exactRule{from: ColumnType{Name: "TIMESTAMP"}, to: ColumnType{Name: "TIMESTAMP", Size: sqliteSizeSentinel}},
	varcharRule{reportedSize: sqliteSizeSentinel},
	identityRule{},
}

var sqliteDefaults = map[defaultKey]string{
	{typeName: "BOOLEAN", canonical: "true"}:  "1",
	{typeName: "BOOLEAN", canonical: "false"}: "0",
}

var sqliteNullDefaults = []string{"", "NULL"}

func (d *SQLiteDialect) MapType(t ColumnType) ColumnType {
	return applyTypeRules(sqliteTypeRules, t)
}

func (d *SQLiteDialect) MapDefault(mapped ColumnType, canonicalDefault string) string {
	return lookupDefault(sqliteDefaults, mapped, canonicalDefault)
}

func (d *SQLiteDialect) IsNullDefault(raw string) bool {
	return inSet(sqliteNullDefaults, raw)
}

func (d *SQLiteDialect) AutoIncExpected(table, column string, t ColumnType, canonicalDefault string, conn ConnInfo) (ColumnType, string) {
	// auto-increment rowid aliases are always INTEGER regardless of the
	// declared logical width
	return ColumnType{Name: "INTEGER", Size: sqliteSizeSentinel}, d.MapDefault(ColumnType{Name: "INTEGER"}, canonicalDefault)
}

func (d *SQLiteDialect) GeneratedIndexName(name string) bool {
	return strings.HasPrefix(name, "sqlite_autoindex_")
}

// RecoverConstraints rebuilds named unique and foreign-key descriptors from
// the creation text retained in sqlite_master.
func (d *SQLiteDialect) RecoverConstraints(createSQL string) (*RecoveredTable, error) {
	return recoverConstraints(createSQL)
}
