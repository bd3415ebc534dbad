package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/alexisbeaulieu97/linkretry/internal/model"
)

// JSONVerdict is the machine-readable form of a TargetVerdict.
type JSONVerdict struct {
	Path       string  `json:"path"`
	Status     string  `json:"status"`
	Attempts   int     `json:"attempts"`
	Diagnostic string  `json:"diagnostic,omitempty"`
	Duration   float64 `json:"duration_seconds"`
}

// JSONSummary holds the verdict counts.
type JSONSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Unknown  int     `json:"unknown"`
	Attempts int     `json:"attempts"`
	Duration float64 `json:"duration_seconds"`
}

// JSONReport is the document written by --json.
type JSONReport struct {
	RunID     string        `json:"run_id"`
	Status    string        `json:"status"`
	TimedOut  bool          `json:"timed_out,omitempty"`
	Aborted   bool          `json:"aborted,omitempty"`
	StartedAt string        `json:"started_at"`
	Summary   JSONSummary   `json:"summary"`
	Verdicts  []JSONVerdict `json:"verdicts"`
}

// Overall status values.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusAborted = "aborted"
)

// ToJSON converts a report into its JSON document.
func ToJSON(report *model.BatchReport) JSONReport {
	counts := report.Counts()
	out := JSONReport{
		RunID:     report.RunID,
		Status:    StatusFailed,
		TimedOut:  report.TimedOut,
		Aborted:   report.Aborted,
		StartedAt: report.StartedAt.Format(time.RFC3339),
		Summary: JSONSummary{
			Total:    counts.Total,
			Passed:   counts.Passed,
			Failed:   counts.Failed,
			Unknown:  counts.Unknown,
			Attempts: report.TotalAttempts(),
			Duration: report.Duration.Seconds(),
		},
		Verdicts: make([]JSONVerdict, len(report.Verdicts)),
	}
	switch {
	case report.Aborted:
		out.Status = StatusAborted
	case report.Passed():
		out.Status = StatusPassed
	}

	for i, v := range report.Verdicts {
		out.Verdicts[i] = JSONVerdict{
			Path:     v.Target.Path,
			Status:   string(v.Status),
			Attempts: v.Attempts,
			Duration: v.Duration.Seconds(),
		}
		if !v.Passed() {
			out.Verdicts[i].Diagnostic = v.Diagnostic
		}
	}
	return out
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, report *model.BatchReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ToJSON(report))
}
