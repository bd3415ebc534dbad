package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// Process exit codes reported by linkretry.
const (
	ExitPassed          = 0
	ExitLinksBroken     = 1
	ExitConfiguration   = 2
	ExitInvocationFault = 3
)

// ParseError represents a configuration file that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures an invalid setting, either from the config file,
// the environment or a command-line flag.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InvocationError means the checker could not be executed at all. It is
// never retried: no amount of waiting fixes a missing executable.
type InvocationError struct {
	Command string
	Target  string
	Err     error
}

// NewInvocationError constructs an InvocationError. Target may be empty when
// the fault is detected before any file is checked.
func NewInvocationError(command, target string, err error) error {
	return &InvocationError{Command: command, Target: target, Err: err}
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("invocation error")
	if e.Command != "" {
		fmt.Fprintf(&b, " [%s]", e.Command)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " on %s", e.Target)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

// Unwrap exposes the root error.
func (e *InvocationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsInvocation reports whether err carries an InvocationError.
func IsInvocation(err error) bool {
	var invErr *InvocationError
	return stdErrors.As(err, &invErr)
}

// ExitCode maps an error returned by the command layer to a process exit code.
// A nil error maps to ExitPassed; unknown errors are treated as configuration
// or usage problems.
func ExitCode(err error) int {
	if err == nil {
		return ExitPassed
	}

	var invErr *InvocationError
	if stdErrors.As(err, &invErr) {
		return ExitInvocationFault
	}

	var exitErr *BrokenLinksError
	if stdErrors.As(err, &exitErr) {
		return ExitLinksBroken
	}

	return ExitConfiguration
}

// BrokenLinksError is returned by the check command when the batch did not
// pass. The diagnostics have already been printed by the time it is returned.
type BrokenLinksError struct {
	Failed  int
	Unknown int
}

func (e *BrokenLinksError) Error() string {
	if e == nil {
		return ""
	}
	if e.Unknown > 0 {
		return fmt.Sprintf("%d target(s) failed link validation, %d unfinished", e.Failed, e.Unknown)
	}
	return fmt.Sprintf("%d target(s) failed link validation", e.Failed)
}
