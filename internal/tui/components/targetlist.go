package components

import "time"

// Target statuses shown while a run is in progress.
const (
	StatusPending  = "pending"
	StatusChecking = "checking"
	StatusRetrying = "retrying"
	StatusPassed   = "passed"
	StatusFailed   = "failed"
	StatusUnknown  = "unknown"
)

// TargetEntry is the display state of one file.
type TargetEntry struct {
	Path        string
	Status      string
	Attempt     int
	MaxAttempts int
	Delay       time.Duration
	Duration    time.Duration
}

// Done reports whether the entry has reached a verdict.
func (e TargetEntry) Done() bool {
	switch e.Status {
	case StatusPassed, StatusFailed, StatusUnknown:
		return true
	default:
		return false
	}
}

// TargetList holds entries in batch order.
type TargetList struct {
	entries []TargetEntry
}

// NewTargetList builds a list from entries in the order given.
func NewTargetList(entries []TargetEntry) TargetList {
	clone := make([]TargetEntry, len(entries))
	copy(clone, entries)
	return TargetList{entries: clone}
}

// Entries returns a copy of the ordered entries.
func (l TargetList) Entries() []TargetEntry {
	clone := make([]TargetEntry, len(l.entries))
	copy(clone, l.entries)
	return clone
}

// Window returns at most limit entries, preferring unfinished ones so a long
// batch keeps the active files on screen. Batch order is preserved.
func (l TargetList) Window(limit int) (shown []TargetEntry, hidden int) {
	if limit <= 0 || len(l.entries) <= limit {
		return l.Entries(), 0
	}

	keep := make([]bool, len(l.entries))
	kept := 0
	for i, e := range l.entries {
		if kept < limit && !e.Done() {
			keep[i] = true
			kept++
		}
	}
	for i := len(l.entries) - 1; i >= 0 && kept < limit; i-- {
		if !keep[i] {
			keep[i] = true
			kept++
		}
	}

	for i, e := range l.entries {
		if keep[i] {
			shown = append(shown, e)
		}
	}
	return shown, len(l.entries) - len(shown)
}
