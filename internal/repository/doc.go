// Package repository defines the history store for solved equations and
// self-test runs.
//
// The History interface is implemented by the sqlite subpackage. History
// is optional: when it is disabled the service runs without a store, and
// a failing store never changes the outcome of a solve.
//
// # SQLite Implementation
//
// The sqlite store keeps two tables, solves and test_runs. Roots and test
// outcomes are stored as JSON documents next to indexed scalar columns
// (coefficients, kind, fingerprint, counts). The schema is created on
// open.
//
// # Testing
//
// The sqlite store is tested against in-memory databases.
package repository
