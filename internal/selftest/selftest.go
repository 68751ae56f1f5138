// Package selftest runs the solver against fixture cases and reports which
// ones disagree with their expected solution.
package selftest

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"time"

	"quadsolve/internal/codec"
	"quadsolve/internal/domain"
	"quadsolve/internal/numeric"
	"quadsolve/internal/solver"

	"golang.org/x/crypto/blake2b"
)

const shortFingerprintLen = 12

//go:embed fixtures/canonical.yaml
var canonicalFixtures []byte

// Canonical returns the built-in fixture set
func Canonical() ([]domain.TestCase, error) {
	cases, err := codec.NewYAMLCodec().ParseFixtures(bytes.NewReader(canonicalFixtures))
	if err != nil {
		return nil, fmt.Errorf("canonical fixtures: %w", err)
	}
	return cases, nil
}

// LoadFixtures reads a YAML or JSON fixture file, chosen by extension
func LoadFixtures(path string) ([]domain.TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()

	cases, err := codec.FixtureImporterFor(path).ParseFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Harness runs fixture cases through a solver
type Harness struct {
	solver *solver.Solver
	now    func() time.Time
}

// New creates a harness around s
func New(s *solver.Solver) *Harness {
	return &Harness{
		solver: s,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run solves every case and records whether the result matches
func (h *Harness) Run(cases []domain.TestCase) *domain.TestRun {
	run := &domain.TestRun{
		Fingerprint: Fingerprint(cases),
		Outcomes:    make([]domain.TestOutcome, 0, len(cases)),
		StartedAt:   h.now(),
	}

	cmp := h.solver.Comparator()
	for i, tc := range cases {
		actual := h.solver.Solve(tc.Coefficients)
		run.Outcomes = append(run.Outcomes, domain.TestOutcome{
			Index:  i,
			Case:   tc,
			Actual: actual,
			Passed: Check(tc.Expected, actual, cmp),
		})
	}

	run.FinishedAt = h.now()
	return run
}

// Check reports whether actual matches expected: same kind, and roots
// within tolerance. Two-root solutions match in either order.
func Check(expected, actual domain.Solution, cmp numeric.Comparator) bool {
	if expected == nil || actual == nil || expected.Kind() != actual.Kind() {
		return false
	}

	switch e := expected.(type) {
	case domain.OneRoot:
		a, ok := actual.(domain.OneRoot)
		return ok && cmp.IsClose(e.X, a.X)
	case domain.TwoRoots:
		a, ok := actual.(domain.TwoRoots)
		return ok && ((cmp.IsClose(e.X1, a.X1) && cmp.IsClose(e.X2, a.X2)) ||
			(cmp.IsClose(e.X1, a.X2) && cmp.IsClose(e.X2, a.X1)))
	default:
		return true
	}
}

// Fingerprint identifies a fixture set so stored runs can be grouped by
// the cases they executed. Names are not part of the fingerprint.
func Fingerprint(cases []domain.TestCase) string {
	var buf []byte
	write := func(v float64) {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}

	for _, tc := range cases {
		write(tc.Coefficients.A)
		write(tc.Coefficients.B)
		write(tc.Coefficients.C)
		buf = append(buf, byte(tc.Expected.Kind()))
		for _, r := range tc.Expected.Roots() {
			write(r)
		}
	}

	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// ShortFingerprint abbreviates a fingerprint for logs and listings
func ShortFingerprint(fp string) string {
	if len(fp) > shortFingerprintLen {
		return fp[:shortFingerprintLen]
	}
	return fp
}
