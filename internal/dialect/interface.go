package dialect

// ID identifies a supported database engine. The set is closed: every ID
// listed here has a Dialect implementation registered in GetDialect.
type ID string

const (
	MySQL     ID = "mysql"
	Postgres  ID = "postgres"
	Oracle    ID = "oracle"
	SQLServer ID = "sqlserver"
	SQLite    ID = "sqlite"
)

// ConnInfo carries the connection metadata that comparison rules are gated
// on. It is fetched once per live instance and cached for the run.
type ConnInfo struct {
	Dialect      ID
	MajorVersion int
}

// ColumnType is a logical type name plus its declared or reported size.
// A size of 0 means "no size declared/reported". Type names are uppercase.
type ColumnType struct {
	Name string
	Size int
}

// Dialect abstracts database-specific introspection and comparison rules.
type Dialect interface {
	ID() ID

	// Metadata Queries (Schema Introspection)
	// Every query takes the target schema name as its single bind parameter
	// and returns rows in the documented column order, so the analyzer can
	// scan them uniformly across engines.
	VersionQuery() string           // -> (version_text)
	TablesQuery() string            // -> (table_name)
	ColumnsQuery() string           // -> (table, column, type, size, is_nullable YES/NO, autoinc_marker, default)
	PrimaryKeysQuery() string       // -> (table, column) ordered by key position
	ForeignKeysQuery() string       // -> (table, name, column, ref_table, ref_column, update_rule, delete_rule, deferrable YES/NO, deferred YES/NO) ordered by position
	UniqueConstraintsQuery() string // -> (table, name, column) ordered by position
	IndexesQuery() string           // -> (table, name, non_unique 0/1, column) ordered by position
	// TableDDLQuery returns (table, create_sql) rows, or "" when the engine
	// does not retain creation text.
	TableDDLQuery() string
	DefaultSchema(database string) string

	// Comparison Rules. MapType and MapDefault are pure lookups; a miss
	// returns the input unchanged, never an error.
	MapType(t ColumnType) ColumnType
	MapDefault(mapped ColumnType, canonicalDefault string) string
	IsNullDefault(raw string) bool
	AutoIncExpected(table, column string, t ColumnType, canonicalDefault string, conn ConnInfo) (ColumnType, string)
	GeneratedIndexName(name string) bool
}

// ConstraintRecoverer is implemented by dialects whose generic introspection
// cannot report constraint names reliably; descriptors are rebuilt from the
// table-creation text the engine retains.
type ConstraintRecoverer interface {
	RecoverConstraints(createSQL string) (*RecoveredTable, error)
}
