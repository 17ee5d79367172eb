package verify

import (
	"database/sql"
	"sync"

	"schema-verify/internal/dialect"
	"schema-verify/internal/schema"
)

// Target is one live database instance to verify.
type Target struct {
	Name    string
	Dialect dialect.Dialect
	DB      *sql.DB
	Schema  string
}

// Report is the outcome of one dialect run. Err is set only for fatal
// conditions (introspection failure, unparseable creation text); ordinary
// check failures live in Results.
type Report struct {
	Target  string
	Dialect dialect.ID
	Results []CheckResult
	Err     error
}

func (r Report) Failures() []CheckResult {
	var failed []CheckResult
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r Report) Passed() bool {
	return r.Err == nil && len(r.Failures()) == 0
}

// dbQuerier adapts a connection pool to the comparator's injected scalar
// query capability. QueryRow releases the underlying connection on every
// exit path, including query failure.
type dbQuerier struct {
	db *sql.DB
}

func (q dbQuerier) QueryScalar(query string) (string, error) {
	var v sql.NullString
	if err := q.db.QueryRow(query).Scan(&v); err != nil {
		return "", err
	}
	return v.String, nil
}

// RunAll verifies every target against the canonical snapshot. Dialect runs
// share nothing but the read-only canonical snapshot, so they execute
// concurrently, each owning its own connection pool. A fatal error in one
// run never stops the sibling runs.
func RunAll(canonical *schema.Snapshot, targets []Target, opts Options, onCheck func()) []Report {
	reports := make([]Report, len(targets))

	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()
			reports[i] = runOne(canonical, t, opts, onCheck)
		}(i, t)
	}
	wg.Wait()

	return reports
}

func runOne(canonical *schema.Snapshot, t Target, opts Options, onCheck func()) Report {
	rep := Report{Target: t.Name, Dialect: t.Dialect.ID()}

	// connection metadata is fetched once per live instance
	conn, err := schema.FetchConnInfo(t.DB, t.Dialect, t.Schema)
	if err != nil {
		rep.Err = err
		return rep
	}

	live, err := schema.Analyze(t.DB, t.Dialect, t.Schema)
	if err != nil {
		rep.Err = err
		return rep
	}

	c := New(t.Dialect, conn, dbQuerier{db: t.DB}, opts)
	rep.Results, rep.Err = c.Verify(canonical, live)

	if onCheck != nil {
		for range rep.Results {
			onCheck()
		}
	}
	return rep
}
