package schema

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"schema-verify/internal/dialect"
)

var versionPattern = regexp.MustCompile(`(\d+)`)

// FetchConnInfo reads the engine version once per live instance. The result
// is cached by the caller for the whole run; comparison rules are gated on
// the major version.
func FetchConnInfo(db *sql.DB, d dialect.Dialect, schemaName string) (dialect.ConnInfo, error) {
	info := dialect.ConnInfo{Dialect: d.ID()}

	var version string
	if err := db.QueryRow(d.VersionQuery(), schemaName).Scan(&version); err != nil {
		return info, fmt.Errorf("failed to query engine version: %w", err)
	}

	m := versionPattern.FindString(version)
	if m == "" {
		return info, fmt.Errorf("unrecognized engine version %q", version)
	}
	fmt.Sscanf(m, "%d", &info.MajorVersion)
	return info, nil
}

// Analyze builds a live snapshot of the target schema. All introspection
// goes through the dialect's queries, which share a uniform row contract so
// the scanning below stays engine-independent.
func Analyze(db *sql.DB, d dialect.Dialect, schemaName string) (*Snapshot, error) {
	target := d.DefaultSchema(schemaName)
	snap := NewSnapshot()

	// --- Step 1: Tables ---
	tRows, err := db.Query(d.TablesQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer tRows.Close()

	for tRows.Next() {
		var tName string
		if err := tRows.Scan(&tName); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		if err := snap.AddTable(tName); err != nil {
			return nil, err
		}
	}
	if err := tRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Columns ---
	rows, err := db.Query(d.ColumnsQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tName, cName, cType, isNull string
		var size sql.NullInt64
		var autoInc, def sql.NullString

		if err := rows.Scan(&tName, &cName, &cType, &size, &isNull, &autoInc, &def); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		col := Column{
			Table:    tName,
			Name:     cName,
			Type:     strings.ToUpper(strings.TrimSpace(cType)),
			Nullable: isNull == "YES",
			AutoInc:  autoInc.Valid && autoInc.String != "",
			Default:  strings.TrimSpace(def.String),
		}
		if size.Valid {
			col.Size = int(size.Int64)
		}
		if err := snap.AddColumn(col); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	// --- Step 3: Primary Keys ---
	// Rows arrive ordered by key position; group them per table.
	pkRows, err := db.Query(d.PrimaryKeysQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer pkRows.Close()

	pkColumns := make(map[string][]string)
	var pkTables []string
	for pkRows.Next() {
		var tName, cName string
		if err := pkRows.Scan(&tName, &cName); err != nil {
			return nil, fmt.Errorf("failed to scan primary key: %w", err)
		}
		if _, seen := pkColumns[tName]; !seen {
			pkTables = append(pkTables, tName)
		}
		pkColumns[tName] = append(pkColumns[tName], cName)
	}
	if err := pkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating primary keys: %w", err)
	}
	for _, t := range pkTables {
		if err := snap.AddPrimaryKey(PrimaryKey{Table: t, Columns: pkColumns[t]}); err != nil {
			return nil, err
		}
	}

	// --- Step 4: Foreign Keys ---
	fkRows, err := db.Query(d.ForeignKeysQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer fkRows.Close()

	var fkRowList []ForeignKey
	for fkRows.Next() {
		var tName, fkName, cName, rTable, rCol, updRule, delRule, deferrable, deferred string
		if err := fkRows.Scan(&tName, &fkName, &cName, &rTable, &rCol, &updRule, &delRule, &deferrable, &deferred); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		fkRowList = append(fkRowList, ForeignKey{
			Name:              fkName,
			Table:             tName,
			RefTable:          rTable,
			Columns:           []ColumnPair{{Foreign: cName, Primary: rCol}},
			OnUpdate:          dialect.ParseRule(updRule),
			OnDelete:          dialect.ParseRule(delRule),
			Deferrable:        deferrable == "YES",
			InitiallyDeferred: deferred == "YES",
		})
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}
	for _, fk := range GroupForeignKeyRows(fkRowList) {
		// engines that lose constraint names report every key under the
		// same (empty) name; keep those rows distinct for the comparator's
		// recovery fallback instead of failing on the duplicate key
		if _, dup := snap.ForeignKey(fk.Key()); dup {
			snap.ForeignKeys = append(snap.ForeignKeys, fk)
			continue
		}
		if err := snap.AddForeignKey(fk); err != nil {
			return nil, err
		}
	}

	// --- Step 5: Unique Constraints ---
	ucRows, err := db.Query(d.UniqueConstraintsQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query unique constraints: %w", err)
	}
	defer ucRows.Close()

	ucOrder := make(map[ObjectKey]int)
	var ucs []Unique
	for ucRows.Next() {
		var tName, ucName, cName string
		if err := ucRows.Scan(&tName, &ucName, &cName); err != nil {
			return nil, fmt.Errorf("failed to scan unique constraint: %w", err)
		}
		key := ObjectKey{Table: tName, Name: ucName}
		if i, seen := ucOrder[key]; seen {
			ucs[i].Columns = append(ucs[i].Columns, cName)
			continue
		}
		ucOrder[key] = len(ucs)
		ucs = append(ucs, Unique{Name: ucName, Table: tName, Columns: []string{cName}})
	}
	if err := ucRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unique constraints: %w", err)
	}
	for _, u := range ucs {
		if err := snap.AddUnique(u); err != nil {
			return nil, err
		}
	}

	// --- Step 6: Indexes ---
	idxRows, err := db.Query(d.IndexesQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query indexes: %w", err)
	}
	defer idxRows.Close()

	idxOrder := make(map[ObjectKey]int)
	var idxs []Index
	for idxRows.Next() {
		var tName, iName, cName string
		var nonUnique int
		if err := idxRows.Scan(&tName, &iName, &nonUnique, &cName); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}
		key := ObjectKey{Table: tName, Name: iName}
		if i, seen := idxOrder[key]; seen {
			idxs[i].Columns = append(idxs[i].Columns, cName)
			continue
		}
		idxOrder[key] = len(idxs)
		idxs = append(idxs, Index{
			Name:      iName,
			Table:     tName,
			Unique:    nonUnique == 0,
			Columns:   []string{cName},
			Generated: d.GeneratedIndexName(iName),
		})
	}
	if err := idxRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating indexes: %w", err)
	}
	for _, idx := range idxs {
		if err := snap.AddIndex(idx); err != nil {
			return nil, err
		}
	}

	// --- Step 7: Creation Text (recovery-capable engines only) ---
	if q := d.TableDDLQuery(); q != "" {
		ddlRows, err := db.Query(q, target)
		if err != nil {
			return nil, fmt.Errorf("failed to query table DDL: %w", err)
		}
		defer ddlRows.Close()

		for ddlRows.Next() {
			var tName, createSQL string
			if err := ddlRows.Scan(&tName, &createSQL); err != nil {
				return nil, fmt.Errorf("failed to scan table DDL: %w", err)
			}
			snap.TableDDL[tName] = createSQL
		}
		if err := ddlRows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating table DDL: %w", err)
		}
	}

	return snap, nil
}

// GroupForeignKeyRows folds ordered single-pair introspection rows into
// foreign-key descriptors. Consecutive rows sharing a non-empty name belong
// to one composite key and accumulate column pairs; nameless rows stay one
// descriptor per row, since without a name there is no way to tell a
// composite key from two distinct keys on the same table.
func GroupForeignKeyRows(rows []ForeignKey) []ForeignKey {
	order := make(map[ObjectKey]int)
	var fks []ForeignKey
	for _, row := range rows {
		if row.Name != "" {
			if i, seen := order[row.Key()]; seen {
				fks[i].Columns = append(fks[i].Columns, row.Columns...)
				continue
			}
			order[row.Key()] = len(fks)
		}
		fks = append(fks, row)
	}
	return fks
}
