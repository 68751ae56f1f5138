package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"quadsolve/internal/numeric"
)

// ErrNonFinite is returned when a coefficient is NaN or infinite.
var ErrNonFinite = errors.New("coefficient is not a finite number")

// Coefficients holds the equation a·x² + b·x + c = 0.
type Coefficients struct {
	A float64 `json:"a" yaml:"a" msgpack:"a"`
	B float64 `json:"b" yaml:"b" msgpack:"b"`
	C float64 `json:"c" yaml:"c" msgpack:"c"`
}

// NewCoefficients creates a coefficient triple
func NewCoefficients(a, b, c float64) Coefficients {
	return Coefficients{A: a, B: b, C: c}
}

// Validate returns ErrNonFinite, naming the offending coefficient, if any
// value is NaN or ±Inf.
func (c Coefficients) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{{"a", c.A}, {"b", c.B}, {"c", c.C}} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s = %v: %w", f.name, f.value, ErrNonFinite)
		}
	}
	return nil
}

// IsQuadratic reports whether a is not effectively zero under cmp.
func (c Coefficients) IsQuadratic(cmp numeric.Comparator) bool {
	return !cmp.IsZero(c.A)
}

// String renders the triple in the compact %g form used in reports.
func (c Coefficients) String() string {
	return "a = " + formatG(c.A) + ", b = " + formatG(c.B) + ", c = " + formatG(c.C)
}

func formatG(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
