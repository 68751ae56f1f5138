// Package solver classifies a·x² + b·x + c = 0 and computes its real roots.
package solver

import (
	"math"

	"quadsolve/internal/domain"
	"quadsolve/internal/numeric"
)

// Solver is safe for concurrent use; it holds only its comparator.
type Solver struct {
	cmp numeric.Comparator
}

// New creates a solver that uses cmp for every "is this zero" decision.
func New(cmp numeric.Comparator) *Solver {
	return &Solver{cmp: cmp}
}

// Default creates a solver bound to numeric.Epsilon.
func Default() *Solver {
	return New(numeric.Default())
}

// Comparator returns the comparator the solver was built with.
func (s *Solver) Comparator() numeric.Comparator {
	return s.cmp
}

// Discriminant returns b² - 4ac.
func Discriminant(c domain.Coefficients) float64 {
	return c.B*c.B - 4*c.A*c.C
}

// Solve classifies the equation and returns its real roots. It never fails.
//
// The positivity test on the discriminant is exact while the zero test is
// tolerant, so a discriminant in (-ε, 0] yields a double root and one in
// (0, ε) still yields two roots.
func (s *Solver) Solve(c domain.Coefficients) domain.Solution {
	if s.cmp.IsZero(c.A) {
		return s.solveLinear(c.B, c.C)
	}

	d := Discriminant(c)
	switch {
	case d > 0:
		sq := math.Sqrt(d)
		return domain.TwoRoots{
			X1: (-c.B + sq) / (2 * c.A),
			X2: (-c.B - sq) / (2 * c.A),
		}
	case s.cmp.IsZero(d):
		return domain.OneRoot{X: -c.B / (2 * c.A)}
	default:
		return domain.NoRoots{}
	}
}

// solveLinear handles b·x + c = 0.
func (s *Solver) solveLinear(b, c float64) domain.Solution {
	if s.cmp.IsZero(b) {
		if s.cmp.IsZero(c) {
			return domain.InfiniteRoots{}
		}
		return domain.NoRoots{}
	}
	return domain.OneRoot{X: -c / b}
}
