package dialect

type MysqlDialect struct{}

func (d *MysqlDialect) ID() ID { return MySQL }

func (d *MysqlDialect) VersionQuery() string {
	// every query must consume the single schema bind; the driver rejects
	// surplus arguments on the prepared path
	return `SELECT VERSION() FROM DUAL WHERE ? IS NOT NULL`
}

func (d *MysqlDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MysqlDialect) ColumnsQuery() string {
	// NUMERIC_PRECISION carries the reported size for integer types,
	// CHARACTER_MAXIMUM_LENGTH for character types.
	return `SELECT TABLE_NAME, COLUMN_NAME, UPPER(DATA_TYPE),
	COALESCE(CHARACTER_MAXIMUM_LENGTH, NUMERIC_PRECISION),
	IS_NULLABLE,
	CASE WHEN EXTRA LIKE '%auto_increment%' THEN 'auto_increment' ELSE '' END,
	COLUMN_DEFAULT
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = ?
ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) PrimaryKeysQuery() string {
	return `SELECT TABLE_NAME, COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = ? AND CONSTRAINT_NAME = 'PRIMARY'
ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) ForeignKeysQuery() string {
	// MySQL has no deferrable constraints; report the flags as fixed NO.
	return `SELECT kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.COLUMN_NAME,
	kcu.REFERENCED_TABLE_NAME, kcu.REFERENCED_COLUMN_NAME,
	rc.UPDATE_RULE, rc.DELETE_RULE, 'NO', 'NO'
FROM information_schema.KEY_COLUMN_USAGE kcu
JOIN information_schema.REFERENTIAL_CONSTRAINTS rc
	ON kcu.CONSTRAINT_NAME = rc.CONSTRAINT_NAME
	AND kcu.CONSTRAINT_SCHEMA = rc.CONSTRAINT_SCHEMA
WHERE kcu.TABLE_SCHEMA = ? AND kcu.REFERENCED_TABLE_NAME IS NOT NULL
ORDER BY kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`
}

func (d *MysqlDialect) UniqueConstraintsQuery() string {
	return `SELECT kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.COLUMN_NAME
FROM information_schema.KEY_COLUMN_USAGE kcu
JOIN information_schema.TABLE_CONSTRAINTS tc
	ON kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME
	AND kcu.TABLE_SCHEMA = tc.TABLE_SCHEMA
	AND kcu.TABLE_NAME = tc.TABLE_NAME
WHERE tc.TABLE_SCHEMA = ? AND tc.CONSTRAINT_TYPE = 'UNIQUE'
ORDER BY kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`
}

func (d *MysqlDialect) IndexesQuery() string {
	return `SELECT TABLE_NAME, INDEX_NAME, NON_UNIQUE, COLUMN_NAME
FROM information_schema.STATISTICS
WHERE TABLE_SCHEMA = ?
ORDER BY TABLE_NAME, INDEX_NAME, SEQ_IN_INDEX`
}

func (d *MysqlDialect) TableDDLQuery() string {
	return ""
}

func (d *MysqlDialect) DefaultSchema(database string) string {
	return database
}

var mysqlTypeRules = []typeRule{
	exactRule{from: ColumnType{Name: "BOOLEAN"}, to: ColumnType{Name: "TINYINT", Size: 3}},
	exactRule{from: ColumnType{Name: "SMALLINT", Size: 16}, to: ColumnType{Name: "SMALLINT", Size: 5}},
	exactRule{from: ColumnType{Name: "INTEGER", Size: 32}, to: ColumnType{Name: "INT", Size: 10}},
	exactRule{from: ColumnType{Name: "BIGINT", Size: 64}, to: ColumnType{Name: "BIGINT", Size: 19}},
	exactRule{from: ColumnType{Name: "TIMESTAMP"}, to: ColumnType{Name: "DATETIME"}},
	exactRule{from: ColumnType{Name: "CLOB"}, to: ColumnType{Name: "LONGTEXT", Size: 4294967295}},
	identityRule{},
}

var mysqlDefaults = map[defaultKey]string{
	{typeName: "TINYINT", canonical: "true"}:            "1",
	{typeName: "TINYINT", canonical: "false"}:           "0",
	{typeName: "DATETIME", canonical: "NOW()"}:          "CURRENT_TIMESTAMP",
	{typeName: "DATETIME", canonical: "CURRENT_DATE()"}: "CURRENT_TIMESTAMP",
}

var mysqlNullDefaults = []string{"", "NULL"}

func (d *MysqlDialect) MapType(t ColumnType) ColumnType {
	return applyTypeRules(mysqlTypeRules, t)
}

func (d *MysqlDialect) MapDefault(mapped ColumnType, canonicalDefault string) string {
	return lookupDefault(mysqlDefaults, mapped, canonicalDefault)
}

func (d *MysqlDialect) IsNullDefault(raw string) bool {
	return inSet(mysqlNullDefaults, raw)
}

func (d *MysqlDialect) AutoIncExpected(table, column string, t ColumnType, canonicalDefault string, conn ConnInfo) (ColumnType, string) {
	return mappedAutoInc(d, t, canonicalDefault)
}

func (d *MysqlDialect) GeneratedIndexName(name string) bool {
	return name == "PRIMARY"
}
