package domain

import "time"

// SolveRecord is a solved equation as kept in history
type SolveRecord struct {
	ID           int64
	Coefficients Coefficients
	Solution     Solution
	Mode         string
	SolvedAt     time.Time
}

// NewSolveRecord creates a record stamped with the current UTC time
func NewSolveRecord(coeffs Coefficients, sol Solution, mode string) *SolveRecord {
	return &SolveRecord{
		Coefficients: coeffs,
		Solution:     sol,
		Mode:         mode,
		SolvedAt:     time.Now().UTC(),
	}
}

// TestCase is a fixture: coefficients plus the expected solution
type TestCase struct {
	Name         string
	Coefficients Coefficients
	Expected     Solution
}

// TestOutcome is the result of running one TestCase
type TestOutcome struct {
	Index  int
	Case   TestCase
	Actual Solution
	Passed bool
}

// TestRun summarizes a self-test run
type TestRun struct {
	ID          int64
	Fingerprint string
	Outcomes    []TestOutcome
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Failed returns the number of outcomes that did not pass
func (r *TestRun) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed {
			n++
		}
	}
	return n
}

// Total returns the number of executed cases
func (r *TestRun) Total() int {
	return len(r.Outcomes)
}

// Passed reports whether every case passed
func (r *TestRun) Passed() bool {
	return r.Failed() == 0
}
