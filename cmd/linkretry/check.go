package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/linkretry/internal/checker"
	"github.com/alexisbeaulieu97/linkretry/internal/config"
	"github.com/alexisbeaulieu97/linkretry/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/linkretry/internal/logger"
	"github.com/alexisbeaulieu97/linkretry/internal/model"
	"github.com/alexisbeaulieu97/linkretry/internal/report"
	"github.com/alexisbeaulieu97/linkretry/internal/retry"
	"github.com/alexisbeaulieu97/linkretry/internal/selector"
	"github.com/alexisbeaulieu97/linkretry/internal/tui"
	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

type checkOptions struct {
	ConfigPath string
	FilesFrom  string
	Discover   string
	JSON       bool
	Stream     bool
	NoTUI      bool
	Verbose    bool
	Paths      []string
}

var checkCmdRunner = runCheck

func newCheckCmd(root *rootFlags) *cobra.Command {
	opts := checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check links in the given files, retrying flaky failures",
		Long: `Check runs the configured link checker once per file. A file whose check
fails is retried up to max_attempts times with a pause between attempts.
Files come from the arguments, --files-from and --discover, in that order.

Exit codes: 0 all files passed, 1 broken links remain, 2 configuration or
usage error, 3 the checker could not be run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			opts.Verbose = root.verbose
			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}
			return checkCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default .linkretry.yml if present)")
	cmd.Flags().StringVar(&opts.FilesFrom, "files-from", "", "Read paths from a file, one per line, or - for stdin")
	cmd.Flags().StringVar(&opts.Discover, "discover", "", "Discover files under this directory")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&opts.Stream, "stream", false, "Pass checker output through to stderr while it runs")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable the interactive progress view")
	addRetryFlags(cmd.Flags())

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	stdout := cmd.OutOrStdout()
	stderr := &lockedWriter{w: cmd.ErrOrStderr()}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyOverrides(cfg, cmd.Flags()); err != nil {
		return err
	}

	log, err := newLogger(stderr, opts.Verbose, !opts.JSON)
	if err != nil {
		return err
	}

	paths, err := collectPaths(cmd.InOrStdin(), opts, cfg, log)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		log.Warn("no files to check")
	}

	inv := checker.NewCommandInvoker(cfg.Checker)
	if opts.Stream {
		inv.Stdout = stderr
		inv.Stderr = stderr
	}
	if len(paths) > 0 {
		if err := inv.Preflight(); err != nil {
			return err
		}
	}

	parallel := cfg.Run.Parallel
	if procs := runtime.GOMAXPROCS(0); parallel > procs {
		log.WithFields(map[string]any{"requested": parallel, "gomaxprocs": procs}).Warn("parallelism capped to GOMAXPROCS")
		parallel = procs
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	publisher := events.NewLoggingPublisher(log)
	policy := retry.PolicyFromConfig(cfg.Retry)

	interactive := !opts.NoTUI && !opts.JSON && !opts.Stream && isTerminal(stdout)
	var ui *progressUI
	if interactive {
		ui = startProgressUI(stdout, paths, policy.MaxAttempts, cancel)
		publisher.SubscribeAll(ui.handle)
	}

	coordinator, err := retry.New(inv, retry.Options{
		Policy:    policy,
		Parallel:  parallel,
		RateLimit: cfg.Run.RateLimit,
		Timeout:   cfg.Run.Timeout,
		Publisher: publisher,
		Logger:    log,
	})
	if err != nil {
		ui.stop()
		return err
	}

	rep, runErr := coordinator.Run(ctx, model.NewTargets(paths))
	if err := ui.stop(); err != nil {
		log.Error(err, "progress view failed")
	}

	if err := writeReport(stdout, stderr, rep, opts.JSON); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	if !rep.Passed() {
		counts := rep.Counts()
		return &linkerrors.BrokenLinksError{Failed: counts.Failed, Unknown: counts.Unknown}
	}
	return nil
}

func collectPaths(stdin io.Reader, opts checkOptions, cfg *config.Config, log *logger.Logger) ([]string, error) {
	lists := [][]string{selector.FromArgs(opts.Paths)}

	if opts.FilesFrom != "" {
		listed, err := selector.FromFile(opts.FilesFrom, stdin)
		if err != nil {
			return nil, err
		}
		lists = append(lists, listed)
	}

	if opts.Discover != "" {
		discoverOpts := selector.OptionsFromConfig(opts.Discover, cfg.Discover)
		discoverOpts.Logger = log
		res, err := selector.Discover(discoverOpts)
		if err != nil {
			return nil, err
		}
		lists = append(lists, res.Paths)
	}

	return selector.Merge(lists...), nil
}

func writeReport(stdout, stderr io.Writer, rep *model.BatchReport, asJSON bool) error {
	if rep == nil {
		return nil
	}
	if asJSON {
		if err := report.WriteJSON(stdout, rep); err != nil {
			return err
		}
	} else if err := report.WriteTable(stdout, rep); err != nil {
		return err
	}
	return report.WriteFailures(stderr, rep)
}

// progressUI runs the Bubble Tea program for an interactive check.
type progressUI struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

func startProgressUI(out io.Writer, paths []string, maxAttempts int, cancel context.CancelFunc) *progressUI {
	ui := &progressUI{
		program: tea.NewProgram(tui.NewModel(paths, maxAttempts), tea.WithOutput(out)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(ui.done)
		final, err := ui.program.Run()
		ui.err = err
		if m, ok := final.(tui.Model); ok && m.Cancelled() {
			cancel()
		}
	}()
	return ui
}

func (u *progressUI) handle(_ context.Context, e events.Event) error {
	if msg := tui.FromEvent(e); msg != nil {
		u.program.Send(msg)
	}
	return nil
}

// stop waits for the program to draw its final frame. It is safe on nil.
func (u *progressUI) stop() error {
	if u == nil {
		return nil
	}
	u.program.Quit()
	<-u.done
	return u.err
}

// lockedWriter serialises writes from log lines and streamed checker output.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
