package codec

import (
	"fmt"
	"time"

	"quadsolve/internal/domain"
)

// SolutionDocument is the wire form of a domain.Solution
type SolutionDocument struct {
	Kind  string    `json:"kind" yaml:"kind" msgpack:"kind"`
	Roots []float64 `json:"roots,omitempty" yaml:"roots,omitempty" msgpack:"roots,omitempty"`
}

// SolveDocument is the wire form of a domain.SolveRecord
type SolveDocument struct {
	ID           int64               `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Coefficients domain.Coefficients `json:"coefficients" yaml:"coefficients" msgpack:"coefficients"`
	Solution     SolutionDocument    `json:"solution" yaml:"solution" msgpack:"solution"`
	Mode         string              `json:"mode,omitempty" yaml:"mode,omitempty" msgpack:"mode,omitempty"`
	SolvedAt     time.Time           `json:"solved_at" yaml:"solved_at" msgpack:"solved_at"`
}

// OutcomeDocument is the wire form of a domain.TestOutcome
type OutcomeDocument struct {
	Index        int                 `json:"index" yaml:"index" msgpack:"index"`
	Name         string              `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Coefficients domain.Coefficients `json:"coefficients" yaml:"coefficients" msgpack:"coefficients"`
	Expected     SolutionDocument    `json:"expected" yaml:"expected" msgpack:"expected"`
	Actual       SolutionDocument    `json:"actual" yaml:"actual" msgpack:"actual"`
	Passed       bool                `json:"passed" yaml:"passed" msgpack:"passed"`
}

// TestRunDocument is the wire form of a domain.TestRun
type TestRunDocument struct {
	ID          int64             `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Fingerprint string            `json:"fingerprint" yaml:"fingerprint" msgpack:"fingerprint"`
	Total       int               `json:"total" yaml:"total" msgpack:"total"`
	Failed      int               `json:"failed" yaml:"failed" msgpack:"failed"`
	Outcomes    []OutcomeDocument `json:"outcomes,omitempty" yaml:"outcomes,omitempty" msgpack:"outcomes,omitempty"`
	StartedAt   time.Time         `json:"started_at" yaml:"started_at" msgpack:"started_at"`
	FinishedAt  time.Time         `json:"finished_at" yaml:"finished_at" msgpack:"finished_at"`
}

// NewSolutionDocument converts a solution to its wire form
func NewSolutionDocument(sol domain.Solution) SolutionDocument {
	if sol == nil {
		return SolutionDocument{}
	}
	return SolutionDocument{Kind: sol.Kind().String(), Roots: sol.Roots()}
}

// Solution converts the document back into a domain.Solution
func (d SolutionDocument) Solution() (domain.Solution, error) {
	kind, err := domain.ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}
	return domain.NewSolution(kind, d.Roots)
}

// NewSolveDocument converts a solve record to its wire form
func NewSolveDocument(rec *domain.SolveRecord) SolveDocument {
	return SolveDocument{
		ID:           rec.ID,
		Coefficients: rec.Coefficients,
		Solution:     NewSolutionDocument(rec.Solution),
		Mode:         rec.Mode,
		SolvedAt:     rec.SolvedAt,
	}
}

// NewTestRunDocument converts a test run to its wire form
func NewTestRunDocument(run *domain.TestRun) TestRunDocument {
	doc := TestRunDocument{
		ID:          run.ID,
		Fingerprint: run.Fingerprint,
		Total:       run.Total(),
		Failed:      run.Failed(),
		StartedAt:   run.StartedAt,
		FinishedAt:  run.FinishedAt,
		Outcomes:    make([]OutcomeDocument, 0, len(run.Outcomes)),
	}
	for _, o := range run.Outcomes {
		doc.Outcomes = append(doc.Outcomes, OutcomeDocument{
			Index:        o.Index,
			Name:         o.Case.Name,
			Coefficients: o.Case.Coefficients,
			Expected:     NewSolutionDocument(o.Case.Expected),
			Actual:       NewSolutionDocument(o.Actual),
			Passed:       o.Passed,
		})
	}
	return doc
}

// fixtureFile is the on-disk layout of a fixture set
type fixtureFile struct {
	Cases []fixtureCase `json:"cases" yaml:"cases"`
}

type fixtureCase struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	A      float64   `json:"a" yaml:"a"`
	B      float64   `json:"b" yaml:"b"`
	C      float64   `json:"c" yaml:"c"`
	Expect string    `json:"expect" yaml:"expect"`
	Roots  []float64 `json:"roots,omitempty" yaml:"roots,omitempty"`
}

func (f fixtureFile) testCases() ([]domain.TestCase, error) {
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("fixture file has no cases")
	}

	cases := make([]domain.TestCase, 0, len(f.Cases))
	for i, fc := range f.Cases {
		expected, err := SolutionDocument{Kind: fc.Expect, Roots: fc.Roots}.Solution()
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		cases = append(cases, domain.TestCase{
			Name:         fc.Name,
			Coefficients: domain.NewCoefficients(fc.A, fc.B, fc.C),
			Expected:     expected,
		})
	}
	return cases, nil
}

func newFixtureFile(cases []domain.TestCase) fixtureFile {
	f := fixtureFile{Cases: make([]fixtureCase, 0, len(cases))}
	for _, tc := range cases {
		f.Cases = append(f.Cases, fixtureCase{
			Name:   tc.Name,
			A:      tc.Coefficients.A,
			B:      tc.Coefficients.B,
			C:      tc.Coefficients.C,
			Expect: tc.Expected.Kind().String(),
			Roots:  tc.Expected.Roots(),
		})
	}
	return f
}
