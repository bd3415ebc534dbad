package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/linkretry/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/linkretry/internal/model"
)

// RunStartMsg announces the batch.
type RunStartMsg struct {
	RunID       string
	Total       int
	MaxAttempts int
}

// TargetStartMsg indicates a file has entered its first attempt.
type TargetStartMsg struct {
	Path        string
	MaxAttempts int
}

// AttemptMsg reports one finished checker invocation.
type AttemptMsg struct {
	Path    string
	Attempt int
	Outcome model.Outcome
}

// RetryMsg reports that a file is waiting before its next attempt.
type RetryMsg struct {
	Path    string
	Attempt int
	Delay   time.Duration
}

// VerdictMsg carries a file's final verdict.
type VerdictMsg struct {
	Verdict model.TargetVerdict
}

// RunDoneMsg carries the final report.
type RunDoneMsg struct {
	Report *model.BatchReport
}

// FromEvent translates a coordinator event into a UI message. It returns nil
// for events the UI does not render.
func FromEvent(e events.Event) tea.Msg {
	switch e.Type {
	case events.RunStarted:
		return RunStartMsg{RunID: e.RunID, Total: e.Total, MaxAttempts: e.MaxAttempts}
	case events.TargetStarted:
		return TargetStartMsg{Path: e.Target.Path, MaxAttempts: e.MaxAttempts}
	case events.AttemptFinished:
		msg := AttemptMsg{Path: e.Target.Path, Attempt: e.Attempt}
		if e.Result != nil {
			msg.Outcome = e.Result.Outcome
		}
		return msg
	case events.TargetRetrying:
		return RetryMsg{Path: e.Target.Path, Attempt: e.Attempt, Delay: e.Delay}
	case events.TargetCompleted:
		if e.Verdict == nil {
			return nil
		}
		return VerdictMsg{Verdict: *e.Verdict}
	case events.RunCompleted:
		return RunDoneMsg{Report: e.Report}
	default:
		return nil
	}
}
