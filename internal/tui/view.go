package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/linkretry/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(m.title()))

	passed, failed, unknown := m.counts()
	progress := components.NewProgress(len(m.targets)).View(components.ProgressCounts{
		Done:     passed + failed + unknown,
		Retrying: m.retrying(),
		Failed:   failed,
	})
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	entries, hidden := components.NewTargetList(m.targets).Window(maxVisibleTargets)
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Files"), renderTargetEntries(entries))
		if hidden > 0 {
			sections = append(sections, mutedStyle.Render(fmt.Sprintf("  … %d more", hidden)))
		}
	}

	summary := components.NewSummary(components.SummaryData{
		Total:     len(m.targets),
		Passed:    passed,
		Failed:    failed,
		Unknown:   unknown,
		Attempts:  m.attempts,
		Finished:  m.finished,
		Cancelled: m.cancelled,
		TimedOut:  m.timedOut,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderTargetEntries(entries []components.TargetEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := fmt.Sprintf(" %s %s", StatusIcon(entry.Status), entry.Path)
		switch entry.Status {
		case components.StatusChecking:
			line = fmt.Sprintf("%s (attempt %d/%d)", line, entry.Attempt, entry.MaxAttempts)
		case components.StatusRetrying:
			line = fmt.Sprintf("%s (attempt %d/%d in %s)", line, entry.Attempt, entry.MaxAttempts, entry.Delay)
		case components.StatusPassed, components.StatusFailed:
			if entry.Attempt > 1 {
				line = fmt.Sprintf("%s after %d attempts", line, entry.Attempt)
			}
			if entry.Duration > 0 {
				line = fmt.Sprintf("%s (%s)", line, entry.Duration.Truncate(10*time.Millisecond))
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) title() string {
	if m.runID != "" {
		return fmt.Sprintf("linkretry • %s", m.runID)
	}
	return "linkretry"
}

// StatusIcon returns the glyph representing a file status.
func StatusIcon(status string) string {
	switch status {
	case components.StatusPassed:
		return successStyle.Render("✓")
	case components.StatusChecking:
		return checkingStyle.Render("⏳")
	case components.StatusRetrying:
		return retryingStyle.Render("↻")
	case components.StatusFailed:
		return failureStyle.Render("✗")
	case components.StatusUnknown:
		return unknownStyle.Render("?")
	default:
		return pendingStyle.Render("…")
	}
}
