package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/linkretry/internal/config"
	"github.com/alexisbeaulieu97/linkretry/internal/model"
	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

// defaultWaitDelay bounds how long Invoke waits for output pipes once the
// checker has exited or been killed, in case it left children holding them.
const defaultWaitDelay = 5 * time.Second

// CommandInvoker runs an external checker process per target.
type CommandInvoker struct {
	command string
	args    []string
	env     map[string]string
	workDir string

	waitDelay time.Duration

	// Stdout and Stderr, when set, receive the checker output as it is
	// produced in addition to it being captured.
	Stdout io.Writer
	Stderr io.Writer
}

var _ Invoker = (*CommandInvoker)(nil)

// NewCommandInvoker builds an invoker from the checker configuration.
func NewCommandInvoker(cfg config.CheckerConfig) *CommandInvoker {
	env := make(map[string]string, len(cfg.Env))
	for k, v := range cfg.Env {
		env[k] = v
	}
	return &CommandInvoker{
		command: cfg.Command,
		args:    append([]string(nil), cfg.Args...),
		env:     env,
		workDir: cfg.WorkDir,

		waitDelay: defaultWaitDelay,
	}
}

// Command returns the configured checker executable.
func (c *CommandInvoker) Command() string {
	return c.command
}

// Preflight confirms the checker executable can be resolved before any target
// is attempted.
func (c *CommandInvoker) Preflight() error {
	if strings.TrimSpace(c.command) == "" {
		return linkerrors.NewInvocationError(c.command, "", fmt.Errorf("no checker command configured"))
	}
	if _, err := exec.LookPath(c.command); err != nil {
		return linkerrors.NewInvocationError(c.command, "", err)
	}
	if c.workDir != "" {
		info, err := os.Stat(c.workDir)
		if err != nil {
			return linkerrors.NewInvocationError(c.command, "", fmt.Errorf("checker workdir: %w", err))
		}
		if !info.IsDir() {
			return linkerrors.NewInvocationError(c.command, "", fmt.Errorf("checker workdir %s is not a directory", c.workDir))
		}
	}
	return nil
}

// Args returns the argument vector used for target.
func (c *CommandInvoker) Args(target model.CheckTarget) []string {
	return buildArgs(c.args, target.Path)
}

// Invoke runs the checker against target and classifies the outcome.
func (c *CommandInvoker) Invoke(ctx context.Context, target model.CheckTarget) (model.AttemptResult, error) {
	result := model.AttemptResult{Target: target, StartedAt: time.Now()}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	cmd := exec.CommandContext(ctx, c.command, c.Args(target)...)
	cmd.Env = buildEnv(c.env)
	cmd.WaitDelay = c.waitDelay
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	out, err := runCaptured(cmd, c.Stdout, c.Stderr)
	result.Duration = time.Since(result.StartedAt)
	result.Stdout = out.Stdout
	result.Stderr = out.Stderr

	// A clean exit stays a pass even when a leftover child kept the pipes
	// open past the wait delay.
	if err == nil || (errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success()) {
		result.Outcome = model.OutcomeSuccess
		return result, nil
	}

	// A process killed because ctx ended is not a verdict on the links.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.Outcome = model.OutcomeFailure
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, linkerrors.NewInvocationError(c.command, target.Path, err)
}

func buildArgs(template []string, path string) []string {
	args := make([]string, 0, len(template)+1)
	substituted := false
	for _, arg := range template {
		if strings.Contains(arg, config.FilePlaceholder) {
			arg = strings.ReplaceAll(arg, config.FilePlaceholder, path)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, path)
	}
	return args
}

func buildEnv(custom map[string]string) []string {
	env := os.Environ()
	keys := make([]string, 0, len(custom))
	for k := range custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, custom[k]))
	}
	return env
}
