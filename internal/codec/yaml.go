package codec

import (
	"fmt"
	"io"

	"quadsolve/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML output and YAML fixture files
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ExportSolve writes a solve record as YAML
func (c *YAMLCodec) ExportSolve(rec *domain.SolveRecord, w io.Writer) error {
	return c.encode(NewSolveDocument(rec), w)
}

// ExportTestRun writes a test run as YAML
func (c *YAMLCodec) ExportTestRun(run *domain.TestRun, w io.Writer) error {
	return c.encode(NewTestRunDocument(run), w)
}

// ParseFixtures reads a YAML fixture file
func (c *YAMLCodec) ParseFixtures(r io.Reader) ([]domain.TestCase, error) {
	var f fixtureFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return f.testCases()
}

// ExportFixtures writes test cases in the fixture file layout
func (c *YAMLCodec) ExportFixtures(cases []domain.TestCase, w io.Writer) error {
	return c.encode(newFixtureFile(cases), w)
}

func (c *YAMLCodec) encode(v any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
