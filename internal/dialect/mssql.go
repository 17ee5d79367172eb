package dialect

import "strings"

type MSSQLDialect struct{}

func (d *MSSQLDialect) ID() ID { return SQLServer }

func (d *MSSQLDialect) VersionQuery() string {
	return `SELECT CAST(SERVERPROPERTY('productversion') AS VARCHAR(128)) WHERE @p1 IS NOT NULL`
}

func (d *MSSQLDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) ColumnsQuery() string {
	return `SELECT c.TABLE_NAME, c.COLUMN_NAME, UPPER(c.DATA_TYPE),
	COALESCE(c.CHARACTER_MAXIMUM_LENGTH, c.NUMERIC_PRECISION),
	c.IS_NULLABLE,
	CASE WHEN COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity') = 1
		THEN 'identity' ELSE '' END,
	c.COLUMN_DEFAULT
FROM INFORMATION_SCHEMA.COLUMNS c
WHERE c.TABLE_SCHEMA = @p1
ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION`
}

func (d *MSSQLDialect) PrimaryKeysQuery() string {
	return `SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
JOIN INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc ON kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME
WHERE kcu.TABLE_SCHEMA = @p1 AND tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
ORDER BY kcu.TABLE_NAME, kcu.ORDINAL_POSITION`
}

func (d *MSSQLDialect) ForeignKeysQuery() string {
	// SQL Server has no deferrable constraints.
	return `SELECT kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.COLUMN_NAME,
	ccu.TABLE_NAME, ccu.COLUMN_NAME,
	rc.UPDATE_RULE, rc.DELETE_RULE, 'NO', 'NO'
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
JOIN INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS rc ON kcu.CONSTRAINT_NAME = rc.CONSTRAINT_NAME
JOIN INFORMATION_SCHEMA.CONSTRAINT_COLUMN_USAGE ccu ON rc.UNIQUE_CONSTRAINT_NAME = ccu.CONSTRAINT_NAME
WHERE kcu.TABLE_SCHEMA = @p1
ORDER BY kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`
}

func (d *MSSQLDialect) UniqueConstraintsQuery() string {
	return `SELECT kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.COLUMN_NAME
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
JOIN INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc ON kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME
WHERE kcu.TABLE_SCHEMA = @p1 AND tc.CONSTRAINT_TYPE = 'UNIQUE'
ORDER BY kcu.TABLE_NAME, kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`
}

func (d *MSSQLDialect) IndexesQuery() string {
	return `SELECT t.name, i.name,
	CASE WHEN i.is_unique = 1 THEN 0 ELSE 1 END,
	c.name
FROM sys.indexes i
JOIN sys.tables t ON i.object_id = t.object_id
JOIN sys.schemas s ON t.schema_id = s.schema_id
JOIN sys.index_columns ic ON i.object_id = ic.object_id AND i.index_id = ic.index_id
JOIN sys.columns c ON ic.object_id = c.object_id AND ic.column_id = c.column_id
WHERE s.name = @p1 AND i.name IS NOT NULL
ORDER BY t.name, i.name, ic.key_ordinal`
}

func (d *MSSQLDialect) TableDDLQuery() string {
	return ""
}

func (d *MSSQLDialect) DefaultSchema(database string) string {
	return "dbo"
}

var mssqlTypeRules = []typeRule{
	exactRule{from: ColumnType{Name: "BOOLEAN"}, to: ColumnType{Name: "BIT", Size: 1}},
	exactRule{from: ColumnType{Name: "SMALLINT", Size: 16}, to: ColumnType{Name: "SMALLINT", Size: 5}},
	exactRule{from: ColumnType{Name: "INTEGER", Size: 32}, to: ColumnType{Name: "INT", Size: 10}},
	exactRule{from: ColumnType{Name: "BIGINT", Size: 64}, to: ColumnType{Name: "BIGINT", Size: 19}},
	exactRule{from: ColumnType{Name: "CLOB"}, to: ColumnType{Name: "NVARCHAR", Size: -1}},
	exactRule{from: ColumnType{Name: "TIMESTAMP"}, to: ColumnType{Name: "DATETIME2", Size: 7}},
	renameRule{from: "VARCHAR", to: "NVARCHAR"},
	identityRule{},
}

var mssqlDefaults = map[defaultKey]string{
	{typeName: "BIT", canonical: "true"}:        "((1))",
	{typeName: "BIT", canonical: "false"}:       "((0))",
	{typeName: "DATETIME2", canonical: "NOW()"}: "(getdate())",
}

var mssqlNullDefaults = []string{"", "NULL", "(NULL)"}

func (d *MSSQLDialect) MapType(t ColumnType) ColumnType {
	return applyTypeRules(mssqlTypeRules, t)
}

func (d *MSSQLDialect) MapDefault(mapped ColumnType, canonicalDefault string) string {
	return lookupDefault(mssqlDefaults, mapped, canonicalDefault)
}

func (d *MSSQLDialect) IsNullDefault(raw string) bool {
	return inSet(mssqlNullDefaults, raw)
}

func (d *MSSQLDialect) AutoIncExpected(table, column string, t ColumnType, canonicalDefault string, conn ConnInfo) (ColumnType, string) {
	return mappedAutoInc(d, t, canonicalDefault)
}

func (d *MSSQLDialect) GeneratedIndexName(name string) bool {
	return strings.HasPrefix(name, "PK__") || strings.HasPrefix(name, "UQ__")
}
