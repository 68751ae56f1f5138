// Package domain defines the value types shared by the quadsolve packages.
//
// # Core Types
//
// Coefficients is the (a, b, c) triple of a·x² + b·x + c = 0.
//
// Solution is a closed sum type with four variants: NoRoots, OneRoot,
// TwoRoots and InfiniteRoots. Only the variant that carries roots exposes
// them, so callers cannot read a second root when there is just one.
//
// # Records
//
// SolveRecord is one solved equation as stored in history. TestCase,
// TestOutcome and TestRun describe self-test fixtures and their results.
//
// # Design Principles
//
// - Immutable value objects
// - No database or external dependencies
package domain
