package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

var (
	progressLabelStyle = lipgloss.NewStyle().Bold(true)
	progressNoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// ProgressCounts is what the progress line needs from the run.
type ProgressCounts struct {
	Done     int
	Retrying int
	Failed   int
}

// Progress renders how many files have reached a verdict.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress component for the given total.
func NewProgress(total int) Progress {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = barWidth
	return Progress{bar: bar, total: total}
}

// Ratio is the completed fraction, capped at 1.
func (p Progress) Ratio(done int) float64 {
	if p.total <= 0 {
		return 0
	}
	return math.Min(1.0, float64(done)/float64(p.total))
}

// View renders the bar with the done count and any retry activity.
func (p Progress) View(c ProgressCounts) string {
	label := progressLabelStyle.Render(fmt.Sprintf("%d/%d files", c.Done, p.total))
	parts := []string{label, " ", p.bar.ViewAs(p.Ratio(c.Done)), fmt.Sprintf(" %3.0f%%", p.Ratio(c.Done)*100)}

	var notes []string
	if c.Retrying > 0 {
		notes = append(notes, fmt.Sprintf("%d retrying", c.Retrying))
	}
	if c.Failed > 0 {
		notes = append(notes, fmt.Sprintf("%d failed", c.Failed))
	}
	if len(notes) > 0 {
		parts = append(parts, "  ", progressNoteStyle.Render(strings.Join(notes, " · ")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
