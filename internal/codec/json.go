package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"quadsolve/internal/domain"
)

// JSONCodec handles JSON output and JSON fixture files
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ExportSolve writes a solve record as indented JSON
func (c *JSONCodec) ExportSolve(rec *domain.SolveRecord, w io.Writer) error {
	return c.encode(NewSolveDocument(rec), w)
}

// ExportTestRun writes a test run as indented JSON
func (c *JSONCodec) ExportTestRun(run *domain.TestRun, w io.Writer) error {
	return c.encode(NewTestRunDocument(run), w)
}

// ParseFixtures reads a JSON fixture file
func (c *JSONCodec) ParseFixtures(r io.Reader) ([]domain.TestCase, error) {
	var f fixtureFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return f.testCases()
}

// ExportFixtures writes test cases in the fixture file layout
func (c *JSONCodec) ExportFixtures(cases []domain.TestCase, w io.Writer) error {
	return c.encode(newFixtureFile(cases), w)
}

func (c *JSONCodec) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
