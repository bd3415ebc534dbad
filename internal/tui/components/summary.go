package components

import (
	"fmt"
	"strings"
)

// SummaryData aggregates counts for rendering summaries.
type SummaryData struct {
	Total     int
	Passed    int
	Failed    int
	Unknown   int
	Attempts  int
	Finished  bool
	Cancelled bool
	TimedOut  bool
}

// Summary renders a textual run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// Completed is the number of files with a verdict.
func (s Summary) Completed() int {
	return s.data.Passed + s.data.Failed + s.data.Unknown
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Files: %d/%d checked (%d passed, %d failed)", s.Completed(), s.data.Total, s.data.Passed, s.data.Failed))
		if s.data.Attempts > 0 {
			lines = append(lines, fmt.Sprintf("Attempts: %d", s.data.Attempts))
		}
	}

	switch {
	case s.data.Cancelled:
		lines = append(lines, "Run cancelled")
	case s.data.TimedOut:
		lines = append(lines, fmt.Sprintf("Run timed out with %d file(s) unfinished", s.data.Unknown))
	case s.data.Finished && s.data.Total == 0:
		lines = append(lines, "No files to check")
	case s.data.Finished && s.data.Failed == 0 && s.data.Unknown == 0:
		lines = append(lines, "All links valid")
	case s.data.Finished:
		lines = append(lines, "Broken links found")
	}

	return strings.Join(lines, "\n")
}
