package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned for input that is not a finite decimal number
var ErrInvalidNumber = errors.New("invalid number")

// ParseNumber parses one coefficient. Surrounding whitespace is ignored;
// anything else after the number is an error.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty input: %w", ErrInvalidNumber)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite: %w", s, ErrInvalidNumber)
	}
	return v, nil
}
