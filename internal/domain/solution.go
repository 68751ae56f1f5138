package domain

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies a Solution variant.
type Kind int

const (
	KindNoRoots Kind = iota
	KindOneRoot
	KindTwoRoots
	KindInfiniteRoots
)

// String returns the stable name used in files, history and machine output.
func (k Kind) String() string {
	switch k {
	case KindNoRoots:
		return "none"
	case KindOneRoot:
		return "one"
	case KindTwoRoots:
		return "two"
	case KindInfiniteRoots:
		return "infinite"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a kind name or root count ("0", "1", "2", "inf") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "no_roots", "0":
		return KindNoRoots, nil
	case "one", "one_root", "1":
		return KindOneRoot, nil
	case "two", "two_roots", "2":
		return KindTwoRoots, nil
	case "infinite", "inf_roots", "inf":
		return KindInfiniteRoots, nil
	default:
		return 0, fmt.Errorf("unknown solution kind %q", s)
	}
}

// Solution is the outcome of solving an equation. The set of
// implementations is closed: NoRoots, OneRoot, TwoRoots, InfiniteRoots.
type Solution interface {
	Kind() Kind
	// Roots returns the real roots carried by the variant, in order.
	Roots() []float64
	solution()
}

// NoRoots means the equation has no real solution.
type NoRoots struct{}

// OneRoot means exactly one real root.
type OneRoot struct {
	X float64
}

// TwoRoots means two distinct real roots. X1 is computed with +√D and X2
// with -√D.
type TwoRoots struct {
	X1 float64
	X2 float64
}

// InfiniteRoots means every real number satisfies the equation.
type InfiniteRoots struct{}

func (NoRoots) Kind() Kind { return KindNoRoots }

func (NoRoots) Roots() []float64 { return nil }

func (NoRoots) solution() {}

func (OneRoot) Kind() Kind { return KindOneRoot }

func (s OneRoot) Roots() []float64 { return []float64{s.X} }

func (OneRoot) solution() {}

func (TwoRoots) Kind() Kind { return KindTwoRoots }

func (s TwoRoots) Roots() []float64 { return []float64{s.X1, s.X2} }

func (TwoRoots) solution() {}

func (InfiniteRoots) Kind() Kind { return KindInfiniteRoots }

func (InfiniteRoots) Roots() []float64 { return nil }

func (InfiniteRoots) solution() {}

// NewSolution builds the variant for kind from roots. It is the inverse of
// Kind/Roots and is used when decoding stored or fixture data.
func NewSolution(kind Kind, roots []float64) (Solution, error) {
	want := map[Kind]int{KindNoRoots: 0, KindOneRoot: 1, KindTwoRoots: 2, KindInfiniteRoots: 0}
	n, ok := want[kind]
	if !ok {
		return nil, fmt.Errorf("unknown solution kind %d", int(kind))
	}
	if len(roots) != n {
		return nil, fmt.Errorf("%s solution needs %d roots, got %d", kind, n, len(roots))
	}

	switch kind {
	case KindOneRoot:
		return OneRoot{X: roots[0]}, nil
	case KindTwoRoots:
		return TwoRoots{X1: roots[0], X2: roots[1]}, nil
	case KindInfiniteRoots:
		return InfiniteRoots{}, nil
	default:
		return NoRoots{}, nil
	}
}

// HasFiniteRoots reports whether every root of s is a finite number.
// Finite coefficients can still overflow, e.g. b = 1e200 makes b² infinite.
func HasFiniteRoots(s Solution) bool {
	for _, r := range s.Roots() {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return false
		}
	}
	return true
}
