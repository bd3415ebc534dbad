package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/linkretry/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/linkretry/internal/model"
	"github.com/alexisbeaulieu97/linkretry/internal/tui/components"
)

func apply(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestUpdateTracksRetryLifecycle(t *testing.T) {
	m := NewModel([]string{"doc.md"}, 3)

	m = apply(t, m, TargetStartMsg{Path: "doc.md", MaxAttempts: 3})
	entry, _ := m.Target("doc.md")
	require.Equal(t, components.StatusChecking, entry.Status)
	require.Equal(t, 1, entry.Attempt)

	m = apply(t, m,
		AttemptMsg{Path: "doc.md", Attempt: 1, Outcome: model.OutcomeFailure},
		RetryMsg{Path: "doc.md", Attempt: 1, Delay: 2 * time.Second},
	)
	entry, _ = m.Target("doc.md")
	require.Equal(t, components.StatusRetrying, entry.Status)
	require.Equal(t, 2, entry.Attempt)
	require.Equal(t, 2*time.Second, entry.Delay)

	m = apply(t, m,
		AttemptMsg{Path: "doc.md", Attempt: 2, Outcome: model.OutcomeSuccess},
		VerdictMsg{Verdict: model.TargetVerdict{
			Target:   model.CheckTarget{Path: "doc.md"},
			Status:   model.VerdictPassed,
			Attempts: 2,
		}},
	)
	entry, _ = m.Target("doc.md")
	require.Equal(t, components.StatusPassed, entry.Status)
	require.Zero(t, entry.Delay)
	require.Equal(t, 1, m.CompletedTargets())
	require.Equal(t, 2, m.attempts)
}

func TestUpdateMapsVerdictStatuses(t *testing.T) {
	m := NewModel([]string{"a.md", "b.md", "c.md"}, 2)
	m = apply(t, m,
		VerdictMsg{Verdict: model.TargetVerdict{Target: model.CheckTarget{Path: "a.md"}, Status: model.VerdictPassed, Attempts: 1}},
		VerdictMsg{Verdict: model.TargetVerdict{Target: model.CheckTarget{Path: "b.md"}, Status: model.VerdictFailed, Attempts: 2}},
		VerdictMsg{Verdict: model.TargetVerdict{Target: model.CheckTarget{Path: "c.md"}, Status: model.VerdictUnknown}},
	)

	passed, failed, unknown := m.counts()
	require.Equal(t, [3]int{1, 1, 1}, [3]int{passed, failed, unknown})
	require.Equal(t, 3, m.CompletedTargets())
}

func TestUpdateRunDoneQuits(t *testing.T) {
	m := NewModel([]string{"a.md"}, 1)
	updated, cmd := m.Update(RunDoneMsg{Report: &model.BatchReport{TimedOut: true}})
	require.NotNil(t, cmd)
	m = updated.(Model)
	require.True(t, m.IsFinished())
	require.True(t, m.timedOut)
}

func TestUpdateIgnoresEmptyPaths(t *testing.T) {
	m := NewModel(nil, 1)
	m = apply(t, m, TargetStartMsg{}, AttemptMsg{}, RetryMsg{}, VerdictMsg{})
	require.Zero(t, m.TotalTargets())
}

func TestUpdateHandlesCtrlC(t *testing.T) {
	m := NewModel(nil, 1)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	m = updated.(Model)
	require.True(t, m.Cancelled())
	require.True(t, m.IsFinished())
}

func TestFromEvent(t *testing.T) {
	t.Parallel()

	target := model.CheckTarget{Path: "doc.md"}
	verdict := model.TargetVerdict{Target: target, Status: model.VerdictFailed}
	result := model.AttemptResult{Outcome: model.OutcomeFailure}
	report := &model.BatchReport{RunID: "r"}

	tests := []struct {
		name  string
		event events.Event
		want  tea.Msg
	}{
		{"run started", events.Event{Type: events.RunStarted, RunID: "r", Total: 2, MaxAttempts: 3}, RunStartMsg{RunID: "r", Total: 2, MaxAttempts: 3}},
		{"target started", events.Event{Type: events.TargetStarted, Target: target, MaxAttempts: 3}, TargetStartMsg{Path: "doc.md", MaxAttempts: 3}},
		{"attempt finished", events.Event{Type: events.AttemptFinished, Target: target, Attempt: 1, Result: &result}, AttemptMsg{Path: "doc.md", Attempt: 1, Outcome: model.OutcomeFailure}},
		{"retrying", events.Event{Type: events.TargetRetrying, Target: target, Attempt: 1, Delay: time.Second}, RetryMsg{Path: "doc.md", Attempt: 1, Delay: time.Second}},
		{"completed", events.Event{Type: events.TargetCompleted, Verdict: &verdict}, VerdictMsg{Verdict: verdict}},
		{"completed without verdict", events.Event{Type: events.TargetCompleted}, nil},
		{"run completed", events.Event{Type: events.RunCompleted, Report: report}, RunDoneMsg{Report: report}},
		{"unknown type", events.Event{Type: "other"}, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FromEvent(tt.event))
		})
	}
}
