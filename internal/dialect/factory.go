package dialect

import "fmt"

// GetDialect returns the Dialect implementation for the given ID.
// The switch is exhaustive over the closed ID set; an unknown ID is a
// configuration error, never a silent fallback.
func GetDialect(id ID) (Dialect, error) {
	switch id {
	case MySQL:
		return &MysqlDialect{}, nil
	case Postgres:
		return &PostgresDialect{}, nil
	case Oracle:
		return &OracleDialect{}, nil
	case SQLServer:
		return &MSSQLDialect{}, nil
	case SQLite:
		return &SQLiteDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported dialect: %q", id)
}

// DriverName maps a dialect to the database/sql driver it connects through.
func DriverName(id ID) string {
	switch id {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case Oracle:
		return "oracle"
	case SQLServer:
		return "sqlserver"
	case SQLite:
		return "sqlite3"
	}
	return string(id)
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
var _ ConstraintRecoverer = (*SQLiteDialect)(nil)
