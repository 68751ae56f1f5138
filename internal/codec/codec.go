// Package codec converts solve records and self-test runs to output formats
// and parses fixture files.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"quadsolve/internal/domain"
	"quadsolve/internal/i18n"
)

// Exporter writes results in one output format
type Exporter interface {
	ExportSolve(rec *domain.SolveRecord, w io.Writer) error
	ExportTestRun(run *domain.TestRun, w io.Writer) error
	Format() string
}

// FixtureImporter parses self-test fixtures
type FixtureImporter interface {
	ParseFixtures(r io.Reader) ([]domain.TestCase, error)
	Format() string
}

// NewExporter returns the exporter for format. The localizer and precision
// are only used by the text format.
func NewExporter(format string, loc *i18n.Localizer, precision int) (Exporter, error) {
	switch strings.ToLower(format) {
	case "text", "":
		if loc == nil {
			return nil, fmt.Errorf("text format requires a localizer")
		}
		return NewTextCodec(loc, precision), nil
	case "json":
		return NewJSONCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	case "msgpack":
		return NewMsgpackCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// FixtureImporterFor picks an importer from the file extension. Anything
// other than .json is read as YAML.
func FixtureImporterFor(path string) FixtureImporter {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONCodec()
	}
	return NewYAMLCodec()
}
