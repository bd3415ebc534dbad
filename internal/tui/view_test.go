package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/linkretry/internal/model"
	"github.com/alexisbeaulieu97/linkretry/internal/tui/components"
)

func TestViewRendersBasicLayout(t *testing.T) {
	m := NewModel([]string{"README.md", "docs/guide.md", "docs/api.md"}, 3)
	m = apply(t, m,
		RunStartMsg{RunID: "run-42", Total: 3, MaxAttempts: 3},
		TargetStartMsg{Path: "README.md", MaxAttempts: 3},
		VerdictMsg{Verdict: model.TargetVerdict{Target: model.CheckTarget{Path: "README.md"}, Status: model.VerdictPassed, Attempts: 2, Duration: time.Second}},
		TargetStartMsg{Path: "docs/guide.md", MaxAttempts: 3},
		RetryMsg{Path: "docs/guide.md", Attempt: 1, Delay: 5 * time.Second},
	)

	view := m.View()
	require.Contains(t, view, "run-42")
	require.Contains(t, view, "1/3 files")
	require.Contains(t, view, "README.md after 2 attempts")
	require.Contains(t, view, "docs/guide.md (attempt 2/3 in 5s)")
	require.Contains(t, view, "docs/api.md")
}

func TestViewShowsSummaryWhenFinished(t *testing.T) {
	m := NewModel([]string{"a.md", "b.md"}, 2)
	m = apply(t, m,
		VerdictMsg{Verdict: model.TargetVerdict{Target: model.CheckTarget{Path: "a.md"}, Status: model.VerdictPassed, Attempts: 1}},
		VerdictMsg{Verdict: model.TargetVerdict{Target: model.CheckTarget{Path: "b.md"}, Status: model.VerdictFailed, Attempts: 2}},
		RunDoneMsg{},
	)

	view := m.View()
	require.Contains(t, view, "Summary")
	require.Contains(t, view, "Broken links found")
}

func TestInteractiveViewWindowsLongBatches(t *testing.T) {
	paths := make([]string, maxVisibleTargets+5)
	for i := range paths {
		paths[i] = fmt.Sprintf("doc-%02d.md", i)
	}
	m := NewModel(paths, 1)

	view := m.View()
	require.Contains(t, view, "… 5 more")
	require.NotContains(t, view, paths[len(paths)-1])
}

func TestStatusIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   string
		expected string
	}{
		{"passed shows checkmark", components.StatusPassed, "✓"},
		{"checking shows hourglass", components.StatusChecking, "⏳"},
		{"retrying shows loop", components.StatusRetrying, "↻"},
		{"failed shows cross", components.StatusFailed, "✗"},
		{"unknown shows question mark", components.StatusUnknown, "?"},
		{"pending shows ellipsis", components.StatusPending, "…"},
		{"empty shows ellipsis", "", "…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Contains(t, StatusIcon(tt.status), tt.expected)
		})
	}
}
