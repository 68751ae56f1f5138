package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"quadsolve/internal/codec"
	"quadsolve/internal/domain"
)

const timeFormat = time.RFC3339Nano

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// formatTime renders t for a TEXT column
func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// parseTime reads a TEXT timestamp column
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalToNull marshals v to a nullable JSON string.
// Returns empty NullString for nil or empty slices.
func marshalToNull(v any) (sql.NullString, error) {
	switch s := v.(type) {
	case nil:
		return sql.NullString{}, nil
	case []float64:
		if len(s) == 0 {
			return sql.NullString{}, nil
		}
	case []codec.OutcomeDocument:
		if len(s) == 0 {
			return sql.NullString{}, nil
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Row Types
// ============================================================================

// solveRow holds the scanned columns of the solves table
type solveRow struct {
	id       int64
	a, b, c  float64
	kind     string
	roots    sql.NullString
	mode     sql.NullString
	solvedAt string
}

func (r *solveRow) scanArgs() []any {
	return []any{&r.id, &r.a, &r.b, &r.c, &r.kind, &r.roots, &r.mode, &r.solvedAt}
}

func (r *solveRow) toDomain() (*domain.SolveRecord, error) {
	var roots []float64
	if err := unmarshalJSONField(r.roots, &roots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roots: %w", err)
	}

	sol, err := codec.SolutionDocument{Kind: r.kind, Roots: roots}.Solution()
	if err != nil {
		return nil, fmt.Errorf("solve %d: %w", r.id, err)
	}

	solvedAt, err := parseTime(r.solvedAt)
	if err != nil {
		return nil, err
	}

	return &domain.SolveRecord{
		ID:           r.id,
		Coefficients: domain.NewCoefficients(r.a, r.b, r.c),
		Solution:     sol,
		Mode:         nullToString(r.mode),
		SolvedAt:     solvedAt,
	}, nil
}

// testRunRow holds the scanned columns of the test_runs table
type testRunRow struct {
	id          int64
	fingerprint string
	total       int
	failed      int
	outcomes    sql.NullString
	startedAt   string
	finishedAt  string
}

func (r *testRunRow) scanArgs() []any {
	return []any{&r.id, &r.fingerprint, &r.total, &r.failed, &r.outcomes, &r.startedAt, &r.finishedAt}
}

func (r *testRunRow) toDomain() (*domain.TestRun, error) {
	var docs []codec.OutcomeDocument
	if err := unmarshalJSONField(r.outcomes, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcomes: %w", err)
	}

	run := &domain.TestRun{
		ID:          r.id,
		Fingerprint: r.fingerprint,
		Outcomes:    make([]domain.TestOutcome, 0, len(docs)),
	}

	for _, d := range docs {
		expected, err := d.Expected.Solution()
		if err != nil {
			return nil, fmt.Errorf("test run %d outcome %d: %w", r.id, d.Index, err)
		}
		actual, err := d.Actual.Solution()
		if err != nil {
			return nil, fmt.Errorf("test run %d outcome %d: %w", r.id, d.Index, err)
		}
		run.Outcomes = append(run.Outcomes, domain.TestOutcome{
			Index:  d.Index,
			Case:   domain.TestCase{Name: d.Name, Coefficients: d.Coefficients, Expected: expected},
			Actual: actual,
			Passed: d.Passed,
		})
	}

	var err error
	if run.StartedAt, err = parseTime(r.startedAt); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(r.finishedAt); err != nil {
		return nil, err
	}
	return run, nil
}

// solveInsertArgs returns the column values for inserting rec
func solveInsertArgs(rec *domain.SolveRecord) ([]any, error) {
	roots, err := marshalToNull(rec.Solution.Roots())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roots: %w", err)
	}
	return []any{
		rec.Coefficients.A, rec.Coefficients.B, rec.Coefficients.C,
		rec.Solution.Kind().String(), roots, stringToNull(rec.Mode), formatTime(rec.SolvedAt),
	}, nil
}

// testRunInsertArgs returns the column values for inserting run
func testRunInsertArgs(run *domain.TestRun) ([]any, error) {
	outcomes, err := marshalToNull(codec.NewTestRunDocument(run).Outcomes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcomes: %w", err)
	}
	return []any{
		run.Fingerprint, run.Total(), run.Failed(), outcomes,
		formatTime(run.StartedAt), formatTime(run.FinishedAt),
	}, nil
}
