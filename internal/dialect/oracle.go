package dialect

import "strings"

type OracleDialect struct{}

func (d *OracleDialect) ID() ID { return Oracle }

func (d *OracleDialect) VersionQuery() string {
	// USER_* views scope everything to the connected user, so the schema
	// bind is consumed with a dummy clause, same as the other queries.
	return `SELECT version FROM product_component_version WHERE product LIKE 'Oracle%' AND :1 IS NOT NULL`
}

func (d *OracleDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM USER_TABLES WHERE :1 IS NOT NULL`
}

func (d *OracleDialect) ColumnsQuery() string {
	return `SELECT t.TABLE_NAME, t.COLUMN_NAME, UPPER(t.DATA_TYPE),
	COALESCE(t.DATA_PRECISION, t.CHAR_LENGTH),
	CASE t.NULLABLE WHEN 'Y' THEN 'YES' ELSE 'NO' END,
	CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 'identity' ELSE '' END,
	t.DATA_DEFAULT
FROM USER_TAB_COLUMNS t
WHERE :1 IS NOT NULL
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *OracleDialect) PrimaryKeysQuery() string {
	return `SELECT cc.TABLE_NAME, cc.COLUMN_NAME
FROM USER_CONS_COLUMNS cc
JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
WHERE uc.CONSTRAINT_TYPE = 'P' AND :1 IS NOT NULL
ORDER BY cc.TABLE_NAME, cc.POSITION`
}

func (d *OracleDialect) ForeignKeysQuery() string {
	// Oracle reports no update rule; it always restricts. DEFERRABLE and
	// DEFERRED are normalized to the uniform YES/NO contract.
	return `SELECT c.TABLE_NAME, c.CONSTRAINT_NAME, cc.COLUMN_NAME,
	r.TABLE_NAME, rcc.COLUMN_NAME,
	'RESTRICT', c.DELETE_RULE,
	CASE c.DEFERRABLE WHEN 'DEFERRABLE' THEN 'YES' ELSE 'NO' END,
	CASE c.DEFERRED WHEN 'DEFERRED' THEN 'YES' ELSE 'NO' END
FROM USER_CONSTRAINTS c
JOIN USER_CONS_COLUMNS cc
	ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME AND c.OWNER = cc.OWNER
JOIN USER_CONSTRAINTS r
	ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME AND c.R_OWNER = r.OWNER
JOIN USER_CONS_COLUMNS rcc
	ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME AND r.OWNER = rcc.OWNER
	AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R' AND :1 IS NOT NULL
ORDER BY c.TABLE_NAME, c.CONSTRAINT_NAME, cc.POSITION`
}

func (d *OracleDialect) UniqueConstraintsQuery() string {
	return `SELECT cc.TABLE_NAME, cc.CONSTRAINT_NAME, cc.COLUMN_NAME
FROM USER_CONS_COLUMNS cc
JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
WHERE uc.CONSTRAINT_TYPE = 'U' AND :1 IS NOT NULL
ORDER BY cc.TABLE_NAME, cc.CONSTRAINT_NAME, cc.POSITION`
}

func (d *OracleDialect) IndexesQuery() string {
	return `SELECT ic.TABLE_NAME, ic.INDEX_NAME,
	CASE i.UNIQUENESS WHEN 'UNIQUE' THEN 0 ELSE 1 END,
	ic.COLUMN_NAME
FROM USER_IND_COLUMNS ic
JOIN USER_INDEXES i ON ic.INDEX_NAME = i.INDEX_NAME
WHERE :1 IS NOT NULL
ORDER BY ic.TABLE_NAME, ic.INDEX_NAME, ic.COLUMN_POSITION`
}

func (d *OracleDialect) TableDDLQuery() string {
	return ""
}

func (d *OracleDialect) DefaultSchema(database string) string {
	return strings.ToUpper(database)
}

var oracleTypeRules = []typeRule{
	exactRule{from: ColumnType{Name: "BOOLEAN"}, to: ColumnType{Name: "NUMBER", Size: 1}},
	exactRule{from: ColumnType{Name: "SMALLINT", Size: 16}, to: ColumnType{Name: "NUMBER", Size: 5}},
	exactRule{from: ColumnType{Name: "INTEGER", Size: 32}, to: ColumnType{Name: "NUMBER", Size: 10}},
	exactRule{from: ColumnType{Name: "BIGINT", Size: 64}, to: ColumnType{Name: "NUMBER", Size: 19}},
	exactRule{from: ColumnType{Name: "CLOB"}, to: ColumnType{Name: "CLOB", Size: 4000}},
	exactRule{from: ColumnType{Name: "TIMESTAMP"}, to: ColumnType{Name: "TIMESTAMP(6)", Size: 6}},
	renameRule{from: "VARCHAR", to: "VARCHAR2"},
	identityRule{},
}

var oracleDefaults = map[defaultKey]string{
	{typeName: "NUMBER", canonical: "true"}:         "1",
	{typeName: "NUMBER", canonical: "false"}:        "0",
	{typeName: "TIMESTAMP(6)", canonical: "NOW()"}:  "CURRENT_TIMESTAMP",
	{typeName: "TIMESTAMP(6)", canonical: "NULL()"}: "NULL",
}

var oracleNullDefaults = []string{"", "NULL"}

func (d *OracleDialect) MapType(t ColumnType) ColumnType {
	return applyTypeRules(oracleTypeRules, t)
}

func (d *OracleDialect) MapDefault(mapped ColumnType, canonicalDefault string) string {
	return lookupDefault(oracleDefaults, mapped, canonicalDefault)
}

func (d *OracleDialect) IsNullDefault(raw string) bool {
	return inSet(oracleNullDefaults, raw)
}

func (d *OracleDialect) AutoIncExpected(table, column string, t ColumnType, canonicalDefault string, conn ConnInfo) (ColumnType, string) {
	return mappedAutoInc(d, t, canonicalDefault)
}

func (d *OracleDialect) GeneratedIndexName(name string) bool {
	return strings.HasPrefix(name, "SYS_")
}
