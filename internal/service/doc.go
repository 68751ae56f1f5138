// Package service implements the solving workflow for quadsolve.
//
// SolveService sits between the command line and the solver. It enforces
// the input policy (finite coefficients, and a nonzero leading coefficient
// in quadratic mode), runs the solver, and hands every result to the
// optional history store and publisher.
//
// # Side effects
//
// Recording and publishing are best effort. A failing store or an
// unreachable Redis server is logged and never changes the returned
// solution.
package service
