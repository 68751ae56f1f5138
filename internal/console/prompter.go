package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"quadsolve/internal/domain"
	"quadsolve/internal/i18n"

	"github.com/mattn/go-isatty"
)

// ErrEndOfInput is returned when the input ends before a value was read
var ErrEndOfInput = errors.New("end of input")

// Prompter reads values from in and writes prompts and messages to out
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	loc         *i18n.Localizer
	interactive bool
}

// NewPrompter creates a prompter. Prompts are enabled when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer, loc *i18n.Localizer) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		loc:         loc,
		interactive: IsTerminal(in),
	}
}

// IsTerminal reports whether r is a terminal device
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetInteractive forces prompts on or off
func (p *Prompter) SetInteractive(on bool) {
	p.interactive = on
}

// Interactive reports whether prompts are written
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Localizer returns the localizer used for prompts and messages
func (p *Prompter) Localizer() *i18n.Localizer {
	return p.loc
}

// ReadCoefficients reads a, b and c in that order
func (p *Prompter) ReadCoefficients() (domain.Coefficients, error) {
	var values [3]float64
	for i, key := range []string{"prompt.a", "prompt.b", "prompt.c"} {
		v, err := p.ReadNumber(key)
		if err != nil {
			return domain.Coefficients{}, err
		}
		values[i] = v
	}
	return domain.NewCoefficients(values[0], values[1], values[2]), nil
}

// ReadNumber prompts with the message under promptKey until a valid number
// is entered.
func (p *Prompter) ReadNumber(promptKey string) (float64, error) {
	for {
		p.Prompt(promptKey)

		line, err := p.ReadLine()
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				p.Println(p.loc.T("input.eof"))
			}
			return 0, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		v, err := ParseNumber(line)
		if err != nil {
			p.Println(p.loc.T("input.invalid"))
			continue
		}
		return v, nil
	}
}

// ReadLine returns the next line without its terminator. A final line
// without a newline is returned normally; after it ErrEndOfInput.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", ErrEndOfInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt writes the message under key when the prompter is interactive
func (p *Prompter) Prompt(key string, args ...any) {
	if p.interactive {
		fmt.Fprint(p.out, p.loc.T(key, args...))
	}
}

// Println writes one line to the output
func (p *Prompter) Println(s string) {
	fmt.Fprintln(p.out, s)
}
