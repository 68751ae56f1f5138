// Package cli implements the quadsolve command line: flag parsing, command
// dispatch, and exit codes.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"quadsolve/internal/config"
)

const usage = `Usage: quadsolve [flags] [command] [command flags]

Solves a*x^2 + b*x + c = 0 over the reals.

Commands:
  (none)    interactive menu
  solve     solve one equation; -a A -b B -c C, or prompt when omitted
  test      run the self-test; -fixtures FILE to use a YAML or JSON fixture set,
            -watch to rerun it whenever that file changes
  history   list recent solves; -limit N, -runs for self-test runs
  config    print the effective configuration; -init PATH writes defaults
  help      show this message

Flags:
  -config PATH      config file (default: search ./quadsolve.yaml, XDG, /etc)
  -locale TAG       message locale: en-US, ru-RU
  -mode MODE        general (solve degenerate equations) or quadratic (reject a = 0)
  -format FORMAT    text, json, yaml or msgpack
  -precision N      decimals in text output
  -db PATH          record history in this SQLite database
  -verbose          log to stderr

Exit codes: 0 success, 1 self-test failures, 2 invalid invocation or input,
3 configuration error, 4 internal error.
`

// Run executes the command line in args (without the program name) and
// returns the process exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	inv, err := ParseInvocation(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usage)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "Run 'quadsolve help' for usage.")
		return ExitCode(err)
	}

	if inv.Verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if inv.Command == CommandConfig {
		err := runConfig(inv, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
		}
		return ExitCode(err)
	}

	a, err := newApp(ctx, inv, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitCode(err)
	}
	defer a.close()

	code, err := a.execute(ctx, inv)
	if err != nil {
		a.report(err)
		return ExitCode(err)
	}
	return code
}

// runConfig prints the effective configuration, or writes a default file
func runConfig(inv Invocation, stdout io.Writer) error {
	if inv.InitPath != "" {
		if _, err := os.Stat(inv.InitPath); err == nil {
			return invalidInvocationf("%s already exists", inv.InitPath)
		}
		if err := config.DefaultConfig().Save(inv.InitPath); err != nil {
			return configErrorf("write config: %v", err)
		}
		fmt.Fprintf(stdout, "Wrote default configuration to %s\n", inv.InitPath)
		return nil
	}

	cfg, path, err := loadConfig(inv)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(stdout, "Config file: (none, using defaults)")
		fmt.Fprintf(stdout, "Create one with: quadsolve config -init %s\n", config.DefaultConfigPath())
	} else {
		fmt.Fprintf(stdout, "Config file: %s\n", path)
	}
	fmt.Fprintln(stdout, cfg.Summary())
	return nil
}
