package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"quadsolve/internal/domain"
	"quadsolve/internal/repository"

	_ "modernc.org/sqlite"
)

// DefaultListLimit is used when a list call passes a non-positive limit
const DefaultListLimit = 20

// Repository implements repository.History using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.History = (*Repository)(nil)

// New opens (creating if needed) the history database at dbPath. The path
// ":memory:" opens a private in-memory database.
func New(dbPath string) (*Repository, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	memory := dbPath == ":memory:"
	dsn := dbPath
	if !memory {
		dsn = filepath.Clean(dbPath) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS solves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		a REAL NOT NULL,
		b REAL NOT NULL,
		c REAL NOT NULL,
		kind TEXT NOT NULL,
		roots JSON,
		mode TEXT,
		solved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS test_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL,
		total INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		outcomes JSON,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_solves_solved_at ON solves(solved_at);
	CREATE INDEX IF NOT EXISTS idx_test_runs_fingerprint ON test_runs(fingerprint);
	`

	_, err := r.db.Exec(schema)
	return err
}

// ============================================================================
// Solves
// ============================================================================

// SaveSolve inserts rec and sets its ID
func (r *Repository) SaveSolve(ctx context.Context, rec *domain.SolveRecord) error {
	if rec == nil || rec.Solution == nil {
		return fmt.Errorf("solve record has no solution")
	}

	args, err := solveInsertArgs(rec)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO solves (a, b, c, kind, roots, mode, solved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to insert solve: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read solve id: %w", err)
	}
	rec.ID = id
	return nil
}

// ListSolves returns the most recent solves, newest first
func (r *Repository) ListSolves(ctx context.Context, limit int) ([]*domain.SolveRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, a, b, c, kind, roots, mode, solved_at
		FROM solves
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query solves: %w", err)
	}
	defer rows.Close()

	var records []*domain.SolveRecord
	for rows.Next() {
		var row solveRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ============================================================================
// Test Runs
// ============================================================================

// SaveTestRun inserts run and sets its ID
func (r *Repository) SaveTestRun(ctx context.Context, run *domain.TestRun) error {
	if run == nil {
		return fmt.Errorf("test run is nil")
	}

	args, err := testRunInsertArgs(run)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO test_runs (fingerprint, total, failed, outcomes, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to insert test run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read test run id: %w", err)
	}
	run.ID = id
	return nil
}

// GetTestRun retrieves a test run with its outcomes
func (r *Repository) GetTestRun(ctx context.Context, id int64) (*domain.TestRun, error) {
	var row testRunRow
	err := r.db.QueryRowContext(ctx, `
		SELECT id, fingerprint, total, failed, outcomes, started_at, finished_at
		FROM test_runs WHERE id = ?
	`, id).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("test run %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get test run: %w", err)
	}

	return row.toDomain()
}

// ListTestRuns returns the most recent test runs, newest first
func (r *Repository) ListTestRuns(ctx context.Context, limit int) ([]*domain.TestRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fingerprint, total, failed, outcomes, started_at, finished_at
		FROM test_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query test runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.TestRun
	for rows.Next() {
		var row testRunRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan test run: %w", err)
		}
		run, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Close closes the database
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
