package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/linkretry/internal/model"
)

const (
	ruleWidth = 80
	pathWidth = 50
)

// WriteTable prints one row per verdict in batch order followed by a summary.
func WriteTable(w io.Writer, report *model.BatchReport) error {
	tw := &errWriter{w: w}

	tw.printf("\nLink Check Results:\n")
	tw.printf("%s\n", strings.Repeat("=", ruleWidth))
	tw.printf("%-*s %-10s %-9s %s\n", pathWidth, "File", "Status", "Attempts", "Duration")
	tw.printf("%s\n", strings.Repeat("-", ruleWidth))

	for _, v := range report.Verdicts {
		tw.printf("%-*s %-10s %-9d %.2fs\n",
			pathWidth,
			truncate(v.Target.Path, pathWidth),
			fmt.Sprintf("%s %s", StatusSymbol(v.Status), v.Status),
			v.Attempts,
			v.Duration.Seconds(),
		)
	}

	counts := report.Counts()
	tw.printf("%s\n", strings.Repeat("=", ruleWidth))
	tw.printf("\nSummary:\n")
	tw.printf("  Total:     %d\n", counts.Total)
	tw.printf("  ✔ Passed:  %d\n", counts.Passed)
	tw.printf("  ✖ Failed:  %d\n", counts.Failed)
	if counts.Unknown > 0 {
		tw.printf("  ? Unknown: %d\n", counts.Unknown)
	}
	tw.printf("  Attempts:  %d\n", report.TotalAttempts())
	tw.printf("  Duration:  %s\n", report.Duration.String())

	switch {
	case report.Aborted:
		tw.printf("\n❌ Run aborted: the checker could not be run, remaining files were not checked\n")
	case report.Passed():
		tw.printf("\n✅ All files passed link validation\n")
	case report.TimedOut:
		tw.printf("\n❌ Run timed out before every file finished\n")
	default:
		tw.printf("\n❌ Broken links found\n")
	}
	return tw.err
}

// WriteFailures prints the last checker output of every target that did not
// pass. Nothing is written for a passing report.
func WriteFailures(w io.Writer, report *model.BatchReport) error {
	tw := &errWriter{w: w}
	for _, v := range report.Failures() {
		tw.printf("\n--- %s (%s after %d attempt(s)) ---\n", v.Target.Path, v.Status, v.Attempts)
		diag := strings.TrimRight(v.Diagnostic, "\n")
		if diag == "" {
			diag = "(checker produced no output)"
		}
		tw.printf("%s\n", diag)
	}
	return tw.err
}

// StatusSymbol returns the glyph shown next to a verdict.
func StatusSymbol(status model.VerdictStatus) string {
	switch status {
	case model.VerdictPassed:
		return "✔"
	case model.VerdictFailed:
		return "✖"
	default:
		return "?"
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return "..." + string(runes[len(runes)-(max-3):])
}

// errWriter keeps the first write error so printing code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
