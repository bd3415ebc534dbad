package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/linkretry/internal/model"
	"github.com/alexisbeaulieu97/linkretry/internal/tui/components"
)

// maxVisibleTargets bounds the file list drawn by the interactive view.
const maxVisibleTargets = 15

type tickMsg struct{}

// Model contains the Bubbletea state for a link check run.
type Model struct {
	runID       string
	targets     []components.TargetEntry
	index       map[string]int
	maxAttempts int
	attempts    int
	finished    bool
	cancelled   bool
	timedOut    bool
}

// NewModel constructs a model with every path pending.
func NewModel(paths []string, maxAttempts int) Model {
	m := Model{
		targets:     make([]components.TargetEntry, 0, len(paths)),
		index:       make(map[string]int, len(paths)),
		maxAttempts: maxAttempts,
	}
	for _, p := range paths {
		m.ensureTarget(p)
	}
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalTargets returns the number of files tracked by the model.
func (m Model) TotalTargets() int {
	return len(m.targets)
}

// CompletedTargets returns the number of files with a verdict.
func (m Model) CompletedTargets() int {
	done := 0
	for _, t := range m.targets {
		if t.Done() {
			done++
		}
	}
	return done
}

// IsFinished reports whether the run has completed.
func (m Model) IsFinished() bool {
	return m.finished
}

// Cancelled reports whether the user interrupted the run from the UI.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Target returns the display entry for path.
func (m Model) Target(path string) (components.TargetEntry, bool) {
	i, ok := m.index[path]
	if !ok {
		return components.TargetEntry{}, false
	}
	return m.targets[i], true
}

func (m *Model) ensureTarget(path string) int {
	if i, ok := m.index[path]; ok {
		return i
	}
	m.targets = append(m.targets, components.TargetEntry{
		Path:        path,
		Status:      components.StatusPending,
		MaxAttempts: m.maxAttempts,
	})
	m.index[path] = len(m.targets) - 1
	return len(m.targets) - 1
}

func (m *Model) counts() (passed, failed, unknown int) {
	for _, t := range m.targets {
		switch t.Status {
		case components.StatusPassed:
			passed++
		case components.StatusFailed:
			failed++
		case components.StatusUnknown:
			unknown++
		}
	}
	return passed, failed, unknown
}

func (m *Model) retrying() int {
	n := 0
	for _, t := range m.targets {
		if t.Status == components.StatusRetrying {
			n++
		}
	}
	return n
}

func statusFromVerdict(status model.VerdictStatus) string {
	switch status {
	case model.VerdictPassed:
		return components.StatusPassed
	case model.VerdictFailed:
		return components.StatusFailed
	default:
		return components.StatusUnknown
	}
}
