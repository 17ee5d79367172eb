package verify

import (
	"fmt"
	"sort"
	"strconv"

	"schema-verify/internal/dialect"
	"schema-verify/internal/schema"
)

// ScalarQuerier is the injected query capability for supplemental checks.
// The core never opens connections itself; the caller supplies whatever
// executes against the live instance.
type ScalarQuerier interface {
	QueryScalar(query string) (string, error)
}

// SupplementalQuery is a per-dialect escape hatch for schema facts generic
// introspection cannot report (fractional-seconds precision, sequence
// storage width). The scalar result is compared against Expect literally.
type SupplementalQuery struct {
	Dialect dialect.ID
	Table   string
	Column  string
	Query   string
	Expect  string
}

// Options is the explicit, immutable comparator configuration. It is passed
// at construction so verification behavior is reproducible without global
// setup.
type Options struct {
	// KnownNullable lists columns that are accepted technical debt for a
	// specific engine: canonically non-nullable, but historically created
	// nullable. The check asserts the column IS nullable, documenting the
	// debt instead of silently ignoring it.
	KnownNullable map[dialect.ID][]schema.ObjectKey
	Supplemental  []SupplementalQuery
}

// DefaultOptions carries the known-debt entries of the current schema.
func DefaultOptions() Options {
	return Options{
		KnownNullable: map[dialect.ID][]schema.ObjectKey{
			dialect.MySQL: {
				{Table: "WORKFLOW_STORE_ENTRY", Name: "WORKFLOW_STATE"},
			},
		},
	}
}

// Comparator verifies one live snapshot against the canonical snapshot
// through a dialect's mapping rules.
type Comparator struct {
	d    dialect.Dialect
	conn dialect.ConnInfo
	q    ScalarQuerier

	knownNullable map[schema.ObjectKey]bool
	supplemental  map[schema.ObjectKey][]SupplementalQuery
}

func New(d dialect.Dialect, conn dialect.ConnInfo, q ScalarQuerier, opts Options) *Comparator {
	c := &Comparator{
		d:             d,
		conn:          conn,
		q:             q,
		knownNullable: make(map[schema.ObjectKey]bool),
		supplemental:  make(map[schema.ObjectKey][]SupplementalQuery),
	}
	for _, key := range opts.KnownNullable[d.ID()] {
		c.knownNullable[key] = true
	}
	for _, sq := range opts.Supplemental {
		if sq.Dialect != d.ID() {
			continue
		}
		key := schema.ObjectKey{Table: sq.Table, Name: sq.Column}
		c.supplemental[key] = append(c.supplemental[key], sq)
	}
	return c
}

// Verify checks every canonical object against the live snapshot and
// returns one result per object, in stable reporting order: columns,
// primary keys, foreign keys, unique constraints, indexes. A single failing
// check never stops evaluation; only a fatal condition (unparseable
// creation text) aborts the run for this dialect.
func (c *Comparator) Verify(canonical, live *schema.Snapshot) ([]CheckResult, error) {
	var results []CheckResult

	for _, col := range canonical.Columns {
		results = append(results, c.checkColumn(col, live))
	}

	for _, pk := range canonical.PrimaryKeys {
		results = append(results, c.checkPrimaryKey(pk, live))
	}

	recovered, err := c.recoverTables(live)
	if err != nil {
		return results, err
	}

	fkUsable := usableConstraintNames(len(live.ForeignKeys), fkNames(live.ForeignKeys))
	for _, fk := range canonical.ForeignKeys {
		results = append(results, c.checkForeignKey(fk, live, recovered, fkUsable))
	}

	ucUsable := usableConstraintNames(len(live.Uniques), ucNames(live.Uniques))
	for _, u := range canonical.Uniques {
		results = append(results, c.checkUnique(u, live, recovered, ucUsable))
	}

	for _, idx := range canonical.Indexes {
		if idx.Generated {
			continue
		}
		results = append(results, c.checkIndex(idx, live))
	}

	return results, nil
}

// ---------------------------------------------------------------------
// Columns
// ---------------------------------------------------------------------

func (c *Comparator) checkColumn(col schema.Column, live *schema.Snapshot) CheckResult {
	res := CheckResult{Kind: KindColumn, Object: col.Key()}

	actual, ok := live.Column(col.Key())
	if !ok {
		res.Failure = &Failure{Code: ObjectNotFound}
		return res
	}

	if actual.AutoInc != col.AutoInc {
		res.Failure = &Failure{
			Code:     AutoIncrementMismatch,
			Expected: strconv.FormatBool(col.AutoInc),
			Actual:   strconv.FormatBool(actual.AutoInc),
		}
		return res
	}

	canonType := dialect.ColumnType{Name: col.Type, Size: col.Size}
	actualType := dialect.ColumnType{Name: actual.Type, Size: actual.Size}

	if col.AutoInc {
		// auto-increment columns bypass the generic type check: the
		// physical storage type commonly differs from the declared logical
		// type, so the expectation is synthesized per dialect and version
		expType, expDefault := c.d.AutoIncExpected(col.Table, col.Name, canonType, col.Default, c.conn)
		if actualType != expType {
			res.Failure = &Failure{Code: TypeMismatch, Expected: typeString(expType), Actual: typeString(actualType)}
			return res
		}
		if actual.Default != expDefault {
			res.Failure = &Failure{Code: DefaultValueMismatch, Expected: expDefault, Actual: actual.Default}
			return res
		}
	} else {
		expType := c.d.MapType(canonType)
		if actualType != expType {
			res.Failure = &Failure{Code: TypeMismatch, Expected: typeString(expType), Actual: typeString(actualType)}
			return res
		}
		if dialect.IsNoDefault(col.Default) {
			// any of the dialect's recognized null-default spellings passes
			if !c.d.IsNullDefault(actual.Default) {
				res.Failure = &Failure{Code: DefaultValueMismatch, Expected: "<no default>", Actual: actual.Default}
				return res
			}
		} else {
			expDefault := c.d.MapDefault(expType, col.Default)
			if actual.Default != expDefault {
				res.Failure = &Failure{Code: DefaultValueMismatch, Expected: expDefault, Actual: actual.Default}
				return res
			}
		}
	}

	if c.knownNullable[col.Key()] {
		// accepted debt: the column must be nullable even though the
		// canonical schema declares it non-nullable
		if !actual.Nullable {
			res.Failure = &Failure{Code: NullabilityMismatch, Field: "known nullable", Expected: "true", Actual: "false"}
			return res
		}
	} else if actual.Nullable != col.Nullable {
		res.Failure = &Failure{
			Code:     NullabilityMismatch,
			Expected: strconv.FormatBool(col.Nullable),
			Actual:   strconv.FormatBool(actual.Nullable),
		}
		return res
	}

	for _, sq := range c.supplemental[col.Key()] {
		if c.q == nil {
			res.Failure = &Failure{Code: DialectQueryFailure, Actual: "no query executor supplied"}
			return res
		}
		got, err := c.q.QueryScalar(sq.Query)
		if err != nil {
			res.Failure = &Failure{Code: DialectQueryFailure, Expected: sq.Expect, Actual: err.Error()}
			return res
		}
		if got != sq.Expect {
			res.Failure = &Failure{Code: SupplementalQueryMismatch, Expected: sq.Expect, Actual: got}
			return res
		}
	}

	return res
}

// ---------------------------------------------------------------------
// Primary Keys
// ---------------------------------------------------------------------

func (c *Comparator) checkPrimaryKey(pk schema.PrimaryKey, live *schema.Snapshot) CheckResult {
	res := CheckResult{Kind: KindPrimaryKey, Object: schema.ObjectKey{Table: pk.Table, Name: "PRIMARY KEY"}}

	actual, ok := live.PrimaryKey(pk.Table)
	if !ok {
		res.Failure = &Failure{Code: ObjectNotFound}
		return res
	}

	if !sameColumnSet(pk.Columns, actual.Columns) {
		res.Failure = &Failure{
			Code:     ConstraintShapeMismatch,
			Field:    "columns",
			Expected: columnSetString(pk.Columns),
			Actual:   columnSetString(actual.Columns),
		}
	}
	return res
}

// ---------------------------------------------------------------------
// Foreign Keys
// ---------------------------------------------------------------------

func (c *Comparator) checkForeignKey(fk schema.ForeignKey, live *schema.Snapshot, recovered map[string]*dialect.RecoveredTable, genericUsable bool) CheckResult {
	res := CheckResult{Kind: KindForeignKey, Object: fk.Key()}

	if genericUsable {
		if actual, ok := live.ForeignKey(fk.Key()); ok {
			res.Failure = compareForeignKey(fk, actual)
			return res
		}
	}

	if rt := recovered[fk.Table]; rt != nil {
		for _, rfk := range rt.ForeignKeys {
			if rfk.Name == fk.Name {
				res.Failure = compareRecoveredForeignKey(fk, rfk)
				return res
			}
		}
	}

	res.Failure = &Failure{Code: ObjectNotFound}
	return res
}

func compareForeignKey(expected schema.ForeignKey, actual schema.ForeignKey) *Failure {
	if expected.RefTable != actual.RefTable {
		return &Failure{Code: ConstraintShapeMismatch, Field: "referenced table", Expected: expected.RefTable, Actual: actual.RefTable}
	}
	if !samePairSet(expected.Columns, actual.Columns) {
		return &Failure{Code: ConstraintShapeMismatch, Field: "column pairs", Expected: pairSetString(expected.Columns), Actual: pairSetString(actual.Columns)}
	}
	if !dialect.RulesEquivalent(expected.OnUpdate, actual.OnUpdate) {
		return &Failure{Code: ConstraintShapeMismatch, Field: "update rule", Expected: expected.OnUpdate.String(), Actual: actual.OnUpdate.String()}
	}
	if !dialect.RulesEquivalent(expected.OnDelete, actual.OnDelete) {
		return &Failure{Code: ConstraintShapeMismatch, Field: "delete rule", Expected: expected.OnDelete.String(), Actual: actual.OnDelete.String()}
	}
	if expected.Deferrable != actual.Deferrable {
		return &Failure{Code: ConstraintShapeMismatch, Field: "deferrable", Expected: strconv.FormatBool(expected.Deferrable), Actual: strconv.FormatBool(actual.Deferrable)}
	}
	if expected.InitiallyDeferred != actual.InitiallyDeferred {
		return &Failure{Code: ConstraintShapeMismatch, Field: "initially deferred", Expected: strconv.FormatBool(expected.InitiallyDeferred), Actual: strconv.FormatBool(actual.InitiallyDeferred)}
	}
	return nil
}

func compareRecoveredForeignKey(expected schema.ForeignKey, actual dialect.RecoveredForeignKey) *Failure {
	recovered := schema.ForeignKey{
		Name:     actual.Name,
		Table:    expected.Table,
		RefTable: actual.RefTable,
		Columns:  []schema.ColumnPair{{Foreign: actual.Column, Primary: actual.RefColumn}},
		OnUpdate: actual.OnUpdate,
		OnDelete: actual.OnDelete,
		// the recovering engine supports neither deferrable constraints nor
		// deferred checking
		Deferrable:        false,
		InitiallyDeferred: false,
	}
	return compareForeignKey(expected, recovered)
}

// ---------------------------------------------------------------------
// Unique Constraints
// ---------------------------------------------------------------------

func (c *Comparator) checkUnique(u schema.Unique, live *schema.Snapshot, recovered map[string]*dialect.RecoveredTable, genericUsable bool) CheckResult {
	res := CheckResult{Kind: KindUnique, Object: u.Key()}

	if genericUsable {
		if actual, ok := live.Unique(u.Key()); ok {
			if !sameColumnSet(u.Columns, actual.Columns) {
				res.Failure = &Failure{
					Code:     ConstraintShapeMismatch,
					Field:    "columns",
					Expected: columnSetString(u.Columns),
					Actual:   columnSetString(actual.Columns),
				}
			}
			return res
		}
	}

	if rt := recovered[u.Table]; rt != nil {
		for _, ru := range rt.Uniques {
			if ru.Name == u.Name {
				if !sameColumnSet(u.Columns, ru.Columns) {
					res.Failure = &Failure{
						Code:     ConstraintShapeMismatch,
						Field:    "columns",
						Expected: columnSetString(u.Columns),
						Actual:   columnSetString(ru.Columns),
					}
				}
				return res
			}
		}
	}

	res.Failure = &Failure{Code: ObjectNotFound}
	return res
}

// ---------------------------------------------------------------------
// Indexes
// ---------------------------------------------------------------------

func (c *Comparator) checkIndex(idx schema.Index, live *schema.Snapshot) CheckResult {
	res := CheckResult{Kind: KindIndex, Object: idx.Key()}

	actual, ok := live.Index(idx.Key())
	if !ok {
		res.Failure = &Failure{Code: ObjectNotFound}
		return res
	}

	if actual.Unique != idx.Unique {
		res.Failure = &Failure{
			Code:     ConstraintShapeMismatch,
			Field:    "unique",
			Expected: strconv.FormatBool(idx.Unique),
			Actual:   strconv.FormatBool(actual.Unique),
		}
		return res
	}
	if !sameColumnList(idx.Columns, actual.Columns) {
		res.Failure = &Failure{
			Code:     ConstraintShapeMismatch,
			Field:    "columns",
			Expected: columnSetString(idx.Columns),
			Actual:   columnSetString(actual.Columns),
		}
	}
	return res
}

// ---------------------------------------------------------------------
// Recovery fallback
// ---------------------------------------------------------------------

func (c *Comparator) recoverTables(live *schema.Snapshot) (map[string]*dialect.RecoveredTable, error) {
	r, ok := c.d.(dialect.ConstraintRecoverer)
	if !ok || len(live.TableDDL) == 0 {
		return nil, nil
	}

	out := make(map[string]*dialect.RecoveredTable, len(live.TableDDL))
	for _, createSQL := range live.TableDDL {
		rt, err := r.RecoverConstraints(createSQL)
		if err != nil {
			return nil, fmt.Errorf("constraint recovery failed: %w", err)
		}
		out[rt.Name] = rt
	}
	return out, nil
}

// usableConstraintNames decides whether the generic constraint list can be
// matched by name: an empty name anywhere, or every key sharing one name,
// means the engine's introspection lost the names and the recovered list
// must be used instead.
func usableConstraintNames(n int, names []string) bool {
	if n == 0 {
		return true
	}
	distinct := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return false
		}
		distinct[name] = true
	}
	return len(distinct) > 1 || n == 1
}

func fkNames(fks []schema.ForeignKey) []string {
	names := make([]string, len(fks))
	for i, fk := range fks {
		names[i] = fk.Name
	}
	return names
}

func ucNames(ucs []schema.Unique) []string {
	names := make([]string, len(ucs))
	for i, u := range ucs {
		names[i] = u.Name
	}
	return names
}

// ---------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------

func typeString(t dialect.ColumnType) string {
	if t.Size != 0 {
		return fmt.Sprintf("%s(%d)", t.Name, t.Size)
	}
	return t.Name
}

func sameColumnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sameColumnList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func samePairSet(a, b []schema.ColumnPair) bool {
	return sameColumnSet(pairStrings(a), pairStrings(b))
}

func pairStrings(pairs []schema.ColumnPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Foreign + "->" + p.Primary
	}
	return out
}

func columnSetString(cols []string) string {
	out := append([]string(nil), cols...)
	sort.Strings(out)
	return fmt.Sprintf("%v", out)
}

func pairSetString(pairs []schema.ColumnPair) string {
	return columnSetString(pairStrings(pairs))
}
