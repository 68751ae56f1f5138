// Package numeric holds the tolerance policy used when deciding whether
// floating-point values are zero or equal.
package numeric

import "math"

// Epsilon is the absolute tolerance below which a magnitude counts as zero.
// It is not scale-invariant: coefficients far from unit magnitude can
// classify differently than exact arithmetic would.
const Epsilon = 1e-6

// Comparator compares floats against a fixed absolute tolerance.
// The zero value compares exactly.
type Comparator struct {
	epsilon float64
}

// New returns a Comparator bound to epsilon.
func New(epsilon float64) Comparator {
	return Comparator{epsilon: math.Abs(epsilon)}
}

// Default returns a Comparator bound to Epsilon.
func Default() Comparator {
	return Comparator{epsilon: Epsilon}
}

// Epsilon returns the tolerance the comparator was built with.
func (c Comparator) Epsilon() float64 {
	return c.epsilon
}

// IsZero reports whether |v| < epsilon.
func (c Comparator) IsZero(v float64) bool {
	return math.Abs(v) < c.epsilon
}

// IsClose reports whether |x - y| < epsilon.
func (c Comparator) IsClose(x, y float64) bool {
	return math.Abs(x-y) < c.epsilon
}
