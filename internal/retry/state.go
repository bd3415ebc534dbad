package retry

import (
	"time"

	"github.com/alexisbeaulieu97/linkretry/internal/model"
)

const unfinishedDiagnostic = "not finished before the run ended"

// targetRun tracks one target through its state machine. It is owned by a
// single worker and never shared.
type targetRun struct {
	target   model.CheckTarget
	state    model.TargetState
	attempts int
	last     *model.AttemptResult
	lastFail *model.AttemptResult
	started  time.Time
}

func newTargetRun(target model.CheckTarget, now time.Time) *targetRun {
	return &targetRun{target: target, state: model.StatePending, started: now}
}

func (r *targetRun) to(next model.TargetState) error {
	state, err := r.state.Transition(next)
	if err != nil {
		return err
	}
	r.state = state
	return nil
}

// begin moves into attempting and returns the new attempt index.
func (r *targetRun) begin() (int, error) {
	if err := r.to(model.StateAttempting); err != nil {
		return r.attempts, err
	}
	r.attempts++
	return r.attempts, nil
}

func (r *targetRun) record(res model.AttemptResult) {
	r.last = &res
	if !res.Succeeded() {
		r.lastFail = &res
	}
}

// verdict builds the final verdict once the machine is terminal.
func (r *targetRun) verdict(now time.Time) model.TargetVerdict {
	v := model.TargetVerdict{
		Target:   r.target,
		Attempts: r.attempts,
		Duration: now.Sub(r.started),
	}
	switch r.state {
	case model.StatePassed:
		v.Status = model.VerdictPassed
	case model.StateFailed:
		v.Status = model.VerdictFailed
	default:
		v.Status = model.VerdictUnknown
	}
	if r.lastFail != nil {
		v.Diagnostic = r.lastFail.Diagnostic()
	}
	if v.Status == model.VerdictUnknown {
		if v.Diagnostic != "" {
			v.Diagnostic = unfinishedDiagnostic + "; last attempt output:\n" + v.Diagnostic
		} else {
			v.Diagnostic = unfinishedDiagnostic
		}
	}
	return v
}

func unfinishedVerdict(target model.CheckTarget) model.TargetVerdict {
	return model.TargetVerdict{
		Target:     target,
		Status:     model.VerdictUnknown,
		Diagnostic: unfinishedDiagnostic,
	}
}
