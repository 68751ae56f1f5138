package repository

import (
	"context"
	"errors"

	"quadsolve/internal/domain"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// History defines the interface for solve and test-run persistence
type History interface {
	// Solves
	SaveSolve(ctx context.Context, rec *domain.SolveRecord) error
	ListSolves(ctx context.Context, limit int) ([]*domain.SolveRecord, error)

	// Self-test runs
	SaveTestRun(ctx context.Context, run *domain.TestRun) error
	GetTestRun(ctx context.Context, id int64) (*domain.TestRun, error)
	ListTestRuns(ctx context.Context, limit int) ([]*domain.TestRun, error)

	// Close releases resources
	Close() error
}
