package model

import (
	"strings"
	"time"
)

// Outcome is the binary result of a single checker run.
type Outcome string

const (
	// OutcomeSuccess means the checker exited cleanly.
	OutcomeSuccess Outcome = "success"
	// OutcomeFailure means the checker ran and reported broken links.
	OutcomeFailure Outcome = "failure"
)

// AttemptResult captures one invocation of the checker against one target.
type AttemptResult struct {
	Target    CheckTarget
	Attempt   int
	Outcome   Outcome
	ExitCode  int
	Stdout    string
	Stderr    string
	Duration  time.Duration
	StartedAt time.Time
}

// Succeeded reports whether the attempt passed.
func (r AttemptResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Diagnostic returns the checker output unmodified, stdout followed by
// stderr.
func (r AttemptResult) Diagnostic() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	case strings.HasSuffix(r.Stdout, "\n"):
		return r.Stdout + r.Stderr
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}
