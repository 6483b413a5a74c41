package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/hibou/internal/config"
	"github.com/rileyhilliard/hibou/internal/counters"
	"github.com/rileyhilliard/hibou/internal/errors"
	"github.com/rileyhilliard/hibou/internal/logger"
	"github.com/rileyhilliard/hibou/internal/monitor"
	"github.com/rileyhilliard/hibou/internal/sampler"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// dashboardCommand loads config, starts the sampler and runs whichever
// front end suits the terminal.
func dashboardCommand(cmd *cobra.Command, flags *DashboardFlags) error {
	cfg, path, err := loadConfig(flags, changedIn(cmd))
	if err != nil {
		return err
	}

	monitor.ApplyColorMode(cfg.Output.Color)

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	lg := logger.New("[hibou]", cfg.Debug)
	if path != "" {
		lg.Debug("using config %s", path)
	}

	s, err := startSampler(cfg, lg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if usePlain(cfg, os.Stdout) {
		return runPlain(ctx, s, cfg, cmd.OutOrStdout(), isTerminal(os.Stdout), lg)
	}
	return runDashboard(ctx, s, cfg, lg)
}

// loadConfig resolves the config file, applies flag overrides and validates
// the result.
func loadConfig(flags *DashboardFlags, changed func(string) bool) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(flags.ConfigPath)
	if err != nil {
		return nil, "", err
	}

	applyFlags(cfg, flags, changed)

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setupLogging sends the standard logger to path, or discards it when path
// is empty. The returned func closes the file.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open the log file "+path,
			"Check that the directory exists and is writable, or drop --log-file.")
	}
	return func() { _ = f.Close() }, nil
}

// startSampler builds the counter reader and moves a new sampler to
// Running. A failure here is fatal: without CPU counters there is nothing
// to show.
func startSampler(cfg *config.Config, lg logger.Logger) (*sampler.Sampler, error) {
	reader := counters.NewFileReader(cfg.Paths(), cfg.InterfaceFilter(), lg)
	s := sampler.New(reader, sampler.Options{Filesystems: cfg.Filesystems}, lg)

	if err := s.Init(); err != nil {
		if stderrors.Is(err, counters.ErrParse) {
			return nil, errors.WrapWithCode(err, errors.ErrParse,
				"Couldn't make sense of the CPU counters",
				"Check that sources.stat and sources.present point at kernel-format files.")
		}
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Couldn't read the CPU counters",
			"hibou reads /proc and /sys; check they are mounted, or set sources in .hibou.yaml.")
	}
	return s, nil
}

// usePlain reports whether to print a text table rather than take over the
// screen.
func usePlain(cfg *config.Config, stdout *os.File) bool {
	return cfg.Output.Plain || !isTerminal(stdout)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// runPlain drives the sampler from the text loop. Keys are only polled when
// stdin is a terminal; otherwise the loop ends on interrupt.
func runPlain(ctx context.Context, s *sampler.Sampler, cfg *config.Config, out io.Writer, clear bool, lg logger.Logger) error {
	var poller sampler.Poller
	if isTerminal(os.Stdin) {
		p, err := sampler.NewStdinPoller()
		if err != nil {
			lg.Warn("keyboard input unavailable: %v", err)
		} else {
			defer p.Close()
			poller = p
		}
	}

	loop := sampler.NewLoop(s, sampler.NewTextRenderer(out, clear), poller, cfg.Period(), lg)
	return loop.Run(ctx)
}

// runDashboard runs the Bubble Tea dashboard until the user quits or ctx
// is cancelled.
func runDashboard(ctx context.Context, s *sampler.Sampler, cfg *config.Config, lg logger.Logger) error {
	info, err := monitor.LoadHostInfo(ctx)
	if err != nil {
		lg.Warn("host details unavailable: %v", err)
	}

	model := monitor.NewModel(s, cfg.Period(), info, monitor.Options{
		Thresholds: cfg.Thresholds,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, runErr := p.Run()

	// A quit from the keyboard has already stopped the sampler. After an
	// interrupt it is only safe to stop once no Tick is outstanding.
	if m, ok := final.(monitor.Model); ok {
		if !m.Sampling() && s.State() == sampler.StateRunning {
			s.Stop()
		}
		if m.Err() != nil {
			return m.Err()
		}
	}

	if runErr != nil {
		if stderrors.Is(runErr, tea.ErrProgramKilled) || stderrors.Is(runErr, tea.ErrInterrupted) {
			return nil
		}
		return errors.WrapWithCode(runErr, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Try --plain to print a text table instead.")
	}
	return nil
}
