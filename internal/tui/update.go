package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/linkretry/internal/tui/components"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case RunStartMsg:
		m.runID = msg.RunID
		if msg.MaxAttempts > 0 {
			m.maxAttempts = msg.MaxAttempts
		}
		return m, nil
	case TargetStartMsg:
		if msg.Path == "" {
			return m, nil
		}
		i := m.ensureTarget(msg.Path)
		entry := m.targets[i]
		entry.Status = components.StatusChecking
		entry.Attempt = 1
		if msg.MaxAttempts > 0 {
			entry.MaxAttempts = msg.MaxAttempts
		}
		m.targets[i] = entry
		return m, nil
	case AttemptMsg:
		if msg.Path == "" {
			return m, nil
		}
		i := m.ensureTarget(msg.Path)
		m.targets[i].Attempt = msg.Attempt
		m.attempts++
		return m, nil
	case RetryMsg:
		if msg.Path == "" {
			return m, nil
		}
		i := m.ensureTarget(msg.Path)
		entry := m.targets[i]
		entry.Status = components.StatusRetrying
		entry.Attempt = msg.Attempt + 1
		entry.Delay = msg.Delay
		m.targets[i] = entry
		return m, nil
	case VerdictMsg:
		path := msg.Verdict.Target.Path
		if path == "" {
			return m, nil
		}
		i := m.ensureTarget(path)
		entry := m.targets[i]
		entry.Status = statusFromVerdict(msg.Verdict.Status)
		entry.Attempt = msg.Verdict.Attempts
		entry.Duration = msg.Verdict.Duration
		entry.Delay = 0
		m.targets[i] = entry
		return m, nil
	case RunDoneMsg:
		m.finished = true
		if msg.Report != nil {
			m.timedOut = msg.Report.TimedOut
		}
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.cancelled = true
			m.finished = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
