package model

import "time"

// VerdictStatus is the final outcome recorded for a target.
type VerdictStatus string

const (
	// VerdictPassed means some attempt within the budget succeeded.
	VerdictPassed VerdictStatus = "passed"
	// VerdictFailed means every attempt in the budget failed.
	VerdictFailed VerdictStatus = "failed"
	// VerdictUnknown marks a target the run gave up on before it finished,
	// for example because the overall timeout fired.
	VerdictUnknown VerdictStatus = "unknown"
)

// IsValid reports whether the status is one of the known verdicts.
func (s VerdictStatus) IsValid() bool {
	switch s {
	case VerdictPassed, VerdictFailed, VerdictUnknown:
		return true
	default:
		return false
	}
}

// TargetVerdict is the immutable final outcome for a target.
type TargetVerdict struct {
	Target     CheckTarget
	Status     VerdictStatus
	Attempts   int
	Diagnostic string
	Duration   time.Duration
}

// Passed reports whether the verdict counts toward a passing batch.
func (v TargetVerdict) Passed() bool {
	return v.Status == VerdictPassed
}
