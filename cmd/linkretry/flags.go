package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/linkretry/internal/config"
)

// addRetryFlags registers the settings that config.ApplyOverrides reads. Their
// defaults are only shown in help; unchanged flags never override the file.
func addRetryFlags(fs *pflag.FlagSet) {
	defaults := config.Default()

	fs.Int("max-attempts", defaults.Retry.MaxAttempts, "Attempts per file before it is reported as failed")
	fs.Duration("delay", defaults.Retry.Delay, "Pause before a retry (first pause for exponential backoff)")
	fs.String("backoff", defaults.Retry.Backoff, "Delay strategy: fixed or exponential")
	fs.Duration("max-delay", defaults.Retry.MaxDelay, "Upper bound for exponential delays")
	fs.Int("parallel", defaults.Run.Parallel, "Files checked concurrently")
	fs.Float64("rate-limit", defaults.Run.RateLimit, "Maximum checker invocations per second across workers (0 disables)")
	fs.Duration("timeout", defaults.Run.Timeout, "Overall run timeout; unfinished files are reported as unknown (0 disables)")
	fs.String("checker", defaults.Checker.Command, "Checker executable")
	fs.StringArray("checker-arg", nil, "Checker argument, repeatable; {file} is replaced with the path")
}

func validateConfigPath(path string) error {
	if path == "" {
		return nil
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is blank")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("config file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", abs)
	}
	return nil
}

// isTerminal is swapped in tests.
var isTerminal = func(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
