package codec

import (
	"fmt"
	"io"

	"quadsolve/internal/domain"
	"quadsolve/internal/i18n"
)

// reportPrecision is the minimum number of fraction digits used for roots
// in failure details, so near misses stay visible.
const reportPrecision = 6

// TextCodec renders human readable, localized output
type TextCodec struct {
	loc       *i18n.Localizer
	precision int
}

// NewTextCodec creates a text codec rendering roots with precision digits
func NewTextCodec(loc *i18n.Localizer, precision int) *TextCodec {
	if precision < 0 {
		precision = 0
	}
	return &TextCodec{loc: loc, precision: precision}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// RenderSolution returns the one-line result message for sol
func (c *TextCodec) RenderSolution(sol domain.Solution) string {
	switch s := sol.(type) {
	case domain.InfiniteRoots:
		return c.loc.T("result.infinite")
	case domain.TwoRoots:
		return c.loc.T("result.two", c.number(s.X1, c.precision), c.number(s.X2, c.precision))
	case domain.OneRoot:
		return c.loc.T("result.one", c.number(s.X, c.precision))
	default:
		return c.loc.T("result.none")
	}
}

// KindLabel returns the localized name of a root count
func (c *TextCodec) KindLabel(k domain.Kind) string {
	return c.loc.T("kind." + k.String())
}

// ExportSolve writes the result message for a solve record
func (c *TextCodec) ExportSolve(rec *domain.SolveRecord, w io.Writer) error {
	_, err := fmt.Fprintln(w, c.RenderSolution(rec.Solution))
	return err
}

// ExportTestRun writes one line per case, failure details, and a summary
func (c *TextCodec) ExportTestRun(run *domain.TestRun, w io.Writer) error {
	p := &linePrinter{w: w}

	for _, o := range run.Outcomes {
		n := o.Index + 1
		if o.Passed {
			p.println(c.loc.T("test.passed", n))
			continue
		}

		p.println(c.loc.T("test.failed", n))
		p.println("  " + c.loc.T("test.coefficients", o.Case.Coefficients.String()))
		p.println("  " + c.loc.T("test.expected_kind", c.KindLabel(o.Case.Expected.Kind())))
		c.writeRoots(p, "test.expected_", o.Case.Expected)
		p.println("  " + c.loc.T("test.actual_kind", c.KindLabel(o.Actual.Kind())))
		c.writeRoots(p, "test.actual_", o.Actual)
	}

	p.println(c.loc.T("test.summary", run.Failed(), run.Total()))
	return p.err
}

func (c *TextCodec) writeRoots(p *linePrinter, prefix string, sol domain.Solution) {
	prec := max(c.precision, reportPrecision)
	switch s := sol.(type) {
	case domain.OneRoot:
		p.println("  " + c.loc.T(prefix+"one", c.number(s.X, prec)))
	case domain.TwoRoots:
		p.println("  " + c.loc.T(prefix+"two", c.number(s.X1, prec), c.number(s.X2, prec)))
	}
}

func (c *TextCodec) number(v float64, precision int) string {
	return c.loc.Decimal(v, precision)
}

// linePrinter keeps the first write error so callers can check once
type linePrinter struct {
	w   io.Writer
	err error
}

func (p *linePrinter) println(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}
