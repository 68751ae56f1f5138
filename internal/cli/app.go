package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"quadsolve/internal/codec"
	"quadsolve/internal/config"
	"quadsolve/internal/console"
	"quadsolve/internal/domain"
	"quadsolve/internal/i18n"
	"quadsolve/internal/publish"
	"quadsolve/internal/repository/sqlite"
	"quadsolve/internal/selftest"
	"quadsolve/internal/service"
	"quadsolve/internal/solver"
	"quadsolve/internal/watcher"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// app holds everything a command needs, built once per invocation
type app struct {
	cfg      *config.Config
	loc      *i18n.Localizer
	text     *codec.TextCodec
	exporter codec.Exporter
	svc      *service.SolveService
	prompter *console.Prompter

	history   *sqlite.Repository
	publisher *publish.Publisher

	stdout io.Writer
	stderr io.Writer
}

// loadConfig loads the config file and applies flag overrides
func loadConfig(inv Invocation) (*config.Config, string, error) {
	cfg, path, err := config.Load(inv.ConfigPath)
	if err != nil {
		return nil, path, configErrorf("config: %v", err)
	}
	inv.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, path, configErrorf("config: %v", err)
	}
	return cfg, path, nil
}

func newApp(ctx context.Context, inv Invocation, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	cfg, path, err := loadConfig(inv)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Printf("Config loaded from %s", path)
	} else {
		log.Println("No config file found, using defaults")
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load message catalogs: %w", err)
	}
	loc, err := bundle.Localizer(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("localizer: %w", err)
	}
	log.Printf("Locale %s resolved to %s", cfg.Locale, loc.Tag())

	exporter, err := codec.NewExporter(cfg.Output.Format, loc, cfg.Output.Precision)
	if err != nil {
		return nil, configErrorf("config: %v", err)
	}

	a := &app{
		cfg:      cfg,
		loc:      loc,
		text:     codec.NewTextCodec(loc, cfg.Output.Precision),
		exporter: exporter,
		prompter: console.NewPrompter(stdin, stdout, loc),
		stdout:   stdout,
		stderr:   stderr,
	}

	var opts []service.Option
	if cfg.History.Enabled {
		repo, err := sqlite.New(cfg.History.Path)
		if err != nil {
			log.Printf("History disabled: %v", err)
		} else {
			log.Printf("History database opened: %s", cfg.History.Path)
			a.history = repo
			opts = append(opts, service.WithHistory(repo))
		}
	}
	if cfg.Publish.Enabled {
		pub, err := publish.New(ctx, cfg.Publish)
		if err != nil {
			log.Printf("Publishing disabled: %v", err)
		} else {
			log.Printf("Publishing to %s on %s", pub.Channel(), cfg.Publish.Addr)
			a.publisher = pub
			opts = append(opts, service.WithPublisher(pub))
		}
	}

	a.svc = service.NewSolveService(solver.Default(), cfg.Mode, opts...)
	return a, nil
}

func (a *app) close() {
	if err := a.publisher.Close(); err != nil {
		log.Printf("Failed to close publisher: %v", err)
	}
	if err := a.history.Close(); err != nil {
		log.Printf("Failed to close history: %v", err)
	}
}

// execute runs the command and returns its exit code
func (a *app) execute(ctx context.Context, inv Invocation) (int, error) {
	switch inv.Command {
	case CommandSolve:
		return ExitSuccess, a.solve(ctx, inv.Coefficients)
	case CommandTest:
		if inv.Watch {
			return a.watchSelfTest(ctx, inv.FixturesPath)
		}
		return a.selfTest(ctx, inv.FixturesPath)
	case CommandHistory:
		if inv.Runs {
			return ExitSuccess, a.listTestRuns(ctx, inv.Limit)
		}
		return ExitSuccess, a.listSolves(ctx, inv.Limit)
	default:
		return ExitSuccess, a.menu(ctx)
	}
}

func (a *app) solve(ctx context.Context, coeffs *domain.Coefficients) error {
	if coeffs == nil {
		c, err := a.prompter.ReadCoefficients()
		if err != nil {
			return err
		}
		coeffs = &c
	}

	rec, err := a.svc.Solve(ctx, *coeffs)
	if err != nil {
		return err
	}
	return a.exporter.ExportSolve(rec, a.stdout)
}

func (a *app) selfTest(ctx context.Context, fixturesPath string) (int, error) {
	cases, err := a.loadCases(fixturesPath)
	if err != nil {
		return ExitSuccess, err
	}

	run, err := a.svc.RunSelfTest(ctx, cases)
	if err != nil {
		return ExitSuccess, err
	}
	if err := a.exporter.ExportTestRun(run, a.stdout); err != nil {
		return ExitSuccess, err
	}

	if !run.Passed() {
		return ExitTestFailure, nil
	}
	return ExitSuccess, nil
}

// watchSelfTest runs the self-test, then reruns it each time the fixture
// file changes until ctx is cancelled. The exit code is the last run's.
func (a *app) watchSelfTest(ctx context.Context, flagPath string) (int, error) {
	path := flagPath
	if path == "" {
		path = a.cfg.Fixtures
	}
	if path == "" {
		return ExitSuccess, invalidInvocationf("-watch needs a fixture file: pass -fixtures or set fixtures in the config")
	}

	code, err := a.selfTest(ctx, flagPath)
	if err != nil {
		return code, err
	}

	w := watcher.New(path, func() {
		fmt.Fprintln(a.stdout)
		next, err := a.selfTest(ctx, flagPath)
		if err != nil {
			// a half-written file is expected while editing
			a.report(err)
			return
		}
		code = next
	})
	if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return code, err
	}
	return code, nil
}

// loadCases picks the fixture set: the -fixtures flag, then the config
// file, then the built-in set.
func (a *app) loadCases(flagPath string) ([]domain.TestCase, error) {
	switch {
	case flagPath != "":
		cases, err := selftest.LoadFixtures(flagPath)
		if err != nil {
			return nil, invalidInvocationf("%v", err)
		}
		return cases, nil
	case a.cfg.Fixtures != "":
		cases, err := selftest.LoadFixtures(a.cfg.Fixtures)
		if err != nil {
			return nil, configErrorf("config fixtures: %v", err)
		}
		return cases, nil
	default:
		return selftest.Canonical()
	}
}

func (a *app) listSolves(ctx context.Context, limit int) error {
	records, err := a.svc.RecentSolves(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.stdout, a.loc.T("history.empty"))
		return nil
	}

	for _, rec := range records {
		fmt.Fprintln(a.stdout, a.loc.T("history.entry",
			rec.ID,
			rec.SolvedAt.Local().Format(historyTimeLayout),
			rec.Coefficients.String(),
			a.text.RenderSolution(rec.Solution),
		))
	}
	return nil
}

func (a *app) listTestRuns(ctx context.Context, limit int) error {
	runs, err := a.svc.RecentTestRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(a.stdout, a.loc.T("history.no_runs"))
		return nil
	}

	for _, run := range runs {
		fmt.Fprintln(a.stdout, a.loc.T("history.run",
			run.ID,
			run.StartedAt.Local().Format(historyTimeLayout),
			selftest.ShortFingerprint(run.Fingerprint),
			run.Failed(),
			run.Total(),
		))
	}
	return nil
}

func (a *app) menu(ctx context.Context) error {
	m := console.NewMenu(a.prompter,
		console.MenuItem{Key: "1", LabelKey: "menu.solve", Action: func(ctx context.Context) error {
			return a.keepGoing(a.solve(ctx, nil))
		}},
		console.MenuItem{Key: "2", LabelKey: "menu.test", Action: func(ctx context.Context) error {
			_, err := a.selfTest(ctx, "")
			return a.keepGoing(err)
		}},
		console.MenuItem{Key: "3", LabelKey: "menu.history", Action: func(ctx context.Context) error {
			return a.keepGoing(a.listSolves(ctx, defaultHistoryLimit))
		}},
	)
	return m.Run(ctx)
}

// keepGoing reports recoverable errors so the menu can continue. End of
// input and internal errors still stop it.
func (a *app) keepGoing(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, console.ErrEndOfInput) || ExitCode(err) == ExitInternalError {
		return err
	}
	a.report(err)
	return nil
}

// report writes err for the user, localized where a message exists
func (a *app) report(err error) {
	switch {
	case errors.Is(err, console.ErrEndOfInput):
		// the prompter already said so
	case errors.Is(err, service.ErrNotQuadratic):
		fmt.Fprintln(a.stderr, a.loc.T("error.not_quadratic"))
	case errors.Is(err, domain.ErrNonFinite):
		fmt.Fprintln(a.stderr, a.loc.T("error.non_finite"))
	case errors.Is(err, service.ErrRootOverflow):
		fmt.Fprintln(a.stderr, a.loc.T("error.overflow"))
	case errors.Is(err, service.ErrHistoryDisabled):
		fmt.Fprintln(a.stderr, a.loc.T("history.disabled"))
	default:
		fmt.Fprintln(a.stderr, err)
	}
}
