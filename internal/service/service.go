package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quadsolve/internal/config"
	"quadsolve/internal/domain"
	"quadsolve/internal/repository"
	"quadsolve/internal/selftest"
	"quadsolve/internal/solver"
)

var (
	// ErrNotQuadratic is returned in quadratic mode when a is effectively zero
	ErrNotQuadratic = errors.New("coefficient a must be nonzero for a quadratic equation")

	// ErrHistoryDisabled is returned by history queries when no store is configured
	ErrHistoryDisabled = errors.New("history is disabled")

	// ErrNoCases is returned when a self-test has nothing to run
	ErrNoCases = errors.New("no test cases")

	// ErrRootOverflow is returned when finite coefficients produce a root
	// outside the float64 range
	ErrRootOverflow = errors.New("root is outside the representable range")
)

// Publisher receives results after they are recorded
type Publisher interface {
	PublishSolve(ctx context.Context, rec *domain.SolveRecord) error
	PublishTestRun(ctx context.Context, run *domain.TestRun) error
}

// SolveService provides business logic for solving equations
type SolveService struct {
	solver    *solver.Solver
	mode      config.Mode
	history   repository.History
	publisher Publisher
}

// Option configures a SolveService
type Option func(*SolveService)

// WithHistory records solves and test runs in h
func WithHistory(h repository.History) Option {
	return func(s *SolveService) {
		s.history = h
	}
}

// WithPublisher publishes solves and test runs through p
func WithPublisher(p Publisher) Option {
	return func(s *SolveService) {
		s.publisher = p
	}
}

// NewSolveService creates a new solve service
func NewSolveService(slv *solver.Solver, mode config.Mode, opts ...Option) *SolveService {
	if mode == "" {
		mode = config.ModeGeneral
	}
	s := &SolveService{
		solver: slv,
		mode:   mode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the input policy in effect
func (s *SolveService) Mode() config.Mode {
	return s.mode
}

// HistoryEnabled reports whether a history store is configured
func (s *SolveService) HistoryEnabled() bool {
	return s.history != nil
}

// Solve validates c, solves it, and records the result. Solutions whose
// roots overflow are rejected with ErrRootOverflow and never recorded.
func (s *SolveService) Solve(ctx context.Context, c domain.Coefficients) (*domain.SolveRecord, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}

	sol := s.solver.Solve(c)
	if !domain.HasFiniteRoots(sol) {
		return nil, fmt.Errorf("%s: %w", c, ErrRootOverflow)
	}
	rec := domain.NewSolveRecord(c, sol, string(s.mode))

	if s.history != nil {
		if err := s.history.SaveSolve(ctx, rec); err != nil {
			log.Printf("Failed to record solve (%s): %v", c, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishSolve(ctx, rec); err != nil {
			log.Printf("Failed to publish solve (%s): %v", c, err)
		}
	}

	return rec, nil
}

func (s *SolveService) validate(c domain.Coefficients) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if s.mode.RequiresQuadratic() && !c.IsQuadratic(s.solver.Comparator()) {
		return fmt.Errorf("a = %g: %w", c.A, ErrNotQuadratic)
	}
	return nil
}

// RunSelfTest runs cases through the solver and records the run. Cases are
// not subject to the input policy.
func (s *SolveService) RunSelfTest(ctx context.Context, cases []domain.TestCase) (*domain.TestRun, error) {
	if len(cases) == 0 {
		return nil, ErrNoCases
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := selftest.New(s.solver).Run(cases)
	log.Printf("Self-test %s: %d of %d cases failed", selftest.ShortFingerprint(run.Fingerprint), run.Failed(), run.Total())

	if s.history != nil {
		if err := s.history.SaveTestRun(ctx, run); err != nil {
			log.Printf("Failed to record test run: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishTestRun(ctx, run); err != nil {
			log.Printf("Failed to publish test run: %v", err)
		}
	}

	return run, nil
}

// RecentSolves returns up to limit recorded solves, newest first
func (s *SolveService) RecentSolves(ctx context.Context, limit int) ([]*domain.SolveRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.ListSolves(ctx, limit)
}

// RecentTestRuns returns up to limit recorded test runs, newest first
func (s *SolveService) RecentTestRuns(ctx context.Context, limit int) ([]*domain.TestRun, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.ListTestRuns(ctx, limit)
}
