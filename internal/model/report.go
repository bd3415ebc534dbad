package model

import (
	"time"

	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

// Counts summarises verdict statuses in a report.
type Counts struct {
	Total   int
	Passed  int
	Failed  int
	Unknown int
}

// BatchReport is the ordered collection of verdicts for one run.
type BatchReport struct {
	RunID     string
	Verdicts  []TargetVerdict
	StartedAt time.Time
	Duration  time.Duration
	TimedOut  bool
	// Aborted is set when an invocation fault stopped the run. Verdicts then
	// holds only the targets finalized before the fault.
	Aborted bool
}

// Passed is the logical AND of every verdict. An empty report passes; an
// aborted one never does.
func (r *BatchReport) Passed() bool {
	if r == nil {
		return true
	}
	if r.Aborted {
		return false
	}
	for _, v := range r.Verdicts {
		if !v.Passed() {
			return false
		}
	}
	return true
}

// Counts tallies the verdicts by status.
func (r *BatchReport) Counts() Counts {
	var c Counts
	if r == nil {
		return c
	}
	for _, v := range r.Verdicts {
		c.Total++
		switch v.Status {
		case VerdictPassed:
			c.Passed++
		case VerdictFailed:
			c.Failed++
		default:
			c.Unknown++
		}
	}
	return c
}

// Failures returns the verdicts that did not pass, in report order.
func (r *BatchReport) Failures() []TargetVerdict {
	if r == nil {
		return nil
	}
	var out []TargetVerdict
	for _, v := range r.Verdicts {
		if !v.Passed() {
			out = append(out, v)
		}
	}
	return out
}

// TotalAttempts sums the attempts made across all targets.
func (r *BatchReport) TotalAttempts() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, v := range r.Verdicts {
		total += v.Attempts
	}
	return total
}

// ExitCode maps the overall status to a process exit code.
func (r *BatchReport) ExitCode() int {
	if r != nil && r.Aborted {
		return linkerrors.ExitInvocationFault
	}
	if r.Passed() {
		return linkerrors.ExitPassed
	}
	return linkerrors.ExitLinksBroken
}
