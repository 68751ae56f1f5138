package cli

import (
	"flag"
	"io"
	"strings"

	"quadsolve/internal/config"
	"quadsolve/internal/console"
	"quadsolve/internal/domain"
)

// Commands
const (
	CommandMenu    = "menu"
	CommandSolve   = "solve"
	CommandTest    = "test"
	CommandHistory = "history"
	CommandConfig  = "config"
)

const (
	defaultHistoryLimit = 10
	unsetPrecision      = -1
)

// Invocation is the parsed command line
type Invocation struct {
	Command string

	// Global overrides; zero values leave the config alone.
	ConfigPath string
	Locale     string
	Mode       config.Mode
	Format     string
	Precision  int
	DBPath     string
	Verbose    bool

	// solve: nil means prompt for coefficients
	Coefficients *domain.Coefficients

	// test
	FixturesPath string
	Watch        bool

	// history
	Limit int
	Runs  bool

	// config
	InitPath string
}

// ParseInvocation parses global flags, the command name, and the command's
// flags. It returns flag.ErrHelp when help was requested.
func ParseInvocation(args []string) (Invocation, error) {
	inv := Invocation{Precision: unsetPrecision, Limit: defaultHistoryLimit}

	fs := newFlagSet("quadsolve")
	var mode string
	fs.StringVar(&inv.ConfigPath, "config", "", "config file path")
	fs.StringVar(&inv.Locale, "locale", "", "message locale (en-US, ru-RU)")
	fs.StringVar(&mode, "mode", "", "general|quadratic")
	fs.StringVar(&inv.Format, "format", "", "output format: text|json|yaml|msgpack")
	fs.IntVar(&inv.Precision, "precision", unsetPrecision, "decimals in text output")
	fs.StringVar(&inv.DBPath, "db", "", "enable history in this SQLite database")
	fs.BoolVar(&inv.Verbose, "verbose", false, "log to stderr")

	if err := fs.Parse(args); err != nil {
		return Invocation{}, parseError(err)
	}

	rest := fs.Args()
	inv.Command = CommandMenu
	if len(rest) > 0 {
		inv.Command, rest = rest[0], rest[1:]
	}

	var err error
	switch inv.Command {
	case CommandMenu:
		err = noArgs(rest)
	case CommandSolve:
		err = inv.parseSolve(rest)
	case CommandTest:
		err = inv.parseTest(rest)
	case CommandHistory:
		err = inv.parseHistory(rest)
	case CommandConfig:
		err = inv.parseConfig(rest)
	case "help":
		return Invocation{}, flag.ErrHelp
	default:
		return Invocation{}, invalidInvocationf("unknown command %q", inv.Command)
	}
	if err != nil {
		return Invocation{}, err
	}

	if mode != "" {
		parsed, err := config.ParseMode(mode)
		if err != nil {
			return Invocation{}, invalidInvocationf("invalid -mode: %v", err)
		}
		inv.Mode = parsed
	}
	if inv.Format != "" {
		format, err := config.ParseFormat(inv.Format)
		if err != nil {
			return Invocation{}, invalidInvocationf("invalid -format: %v", err)
		}
		inv.Format = format
	}
	if inv.Precision != unsetPrecision && (inv.Precision < 0 || inv.Precision > config.MaxPrecision) {
		return Invocation{}, invalidInvocationf("-precision must be between 0 and %d", config.MaxPrecision)
	}

	return inv, nil
}

func (inv *Invocation) parseSolve(args []string) error {
	fs := newFlagSet(CommandSolve)
	var a, b, c string
	fs.StringVar(&a, "a", "", "coefficient a")
	fs.StringVar(&b, "b", "", "coefficient b")
	fs.StringVar(&c, "c", "", "coefficient c")
	fs.StringVar(&inv.Format, "format", inv.Format, "output format")

	if err := fs.Parse(args); err != nil {
		return parseError(err)
	}
	if err := noArgs(fs.Args()); err != nil {
		return err
	}

	set := 0
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "a" || f.Name == "b" || f.Name == "c" {
			set++
		}
	})
	if set == 0 {
		return nil
	}
	if set != 3 {
		return invalidInvocationf("solve needs all of -a, -b and -c, or none to prompt")
	}

	var values [3]float64
	for i, raw := range []string{a, b, c} {
		v, err := console.ParseNumber(raw)
		if err != nil {
			return invalidInvocationf("invalid -%s: %v", []string{"a", "b", "c"}[i], err)
		}
		values[i] = v
	}
	coeffs := domain.NewCoefficients(values[0], values[1], values[2])
	inv.Coefficients = &coeffs
	return nil
}

func (inv *Invocation) parseTest(args []string) error {
	fs := newFlagSet(CommandTest)
	fs.StringVar(&inv.FixturesPath, "fixtures", "", "YAML or JSON fixture file")
	fs.StringVar(&inv.Format, "format", inv.Format, "output format")
	fs.BoolVar(&inv.Watch, "watch", false, "rerun whenever the fixture file changes")

	if err := fs.Parse(args); err != nil {
		return parseError(err)
	}
	return noArgs(fs.Args())
}

func (inv *Invocation) parseHistory(args []string) error {
	fs := newFlagSet(CommandHistory)
	fs.IntVar(&inv.Limit, "limit", defaultHistoryLimit, "number of entries")
	fs.BoolVar(&inv.Runs, "runs", false, "list self-test runs instead of solves")

	if err := fs.Parse(args); err != nil {
		return parseError(err)
	}
	if inv.Limit <= 0 {
		return invalidInvocationf("-limit must be positive")
	}
	return noArgs(fs.Args())
}

func (inv *Invocation) parseConfig(args []string) error {
	fs := newFlagSet(CommandConfig)
	fs.StringVar(&inv.InitPath, "init", "", "write a default config file to this path")

	if err := fs.Parse(args); err != nil {
		return parseError(err)
	}
	return noArgs(fs.Args())
}

// apply writes the flag overrides into cfg
func (inv Invocation) apply(cfg *config.Config) {
	if inv.Locale != "" {
		cfg.Locale = inv.Locale
	}
	if inv.Mode != "" {
		cfg.Mode = inv.Mode
	}
	if inv.Format != "" {
		cfg.Output.Format = inv.Format
	}
	if inv.Precision != unsetPrecision {
		cfg.Output.Precision = inv.Precision
	}
	if inv.DBPath != "" {
		cfg.History.Enabled = true
		cfg.History.Path = inv.DBPath
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed
	return fs
}

func parseError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return invalidInvocationf("%v", err)
}

func noArgs(args []string) error {
	if len(args) != 0 {
		return invalidInvocationf("unexpected arguments: %q", strings.Join(args, " "))
	}
	return nil
}
