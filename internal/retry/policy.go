package retry

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/alexisbeaulieu97/linkretry/internal/config"
	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

// maxDelayCeiling caps exponential delays when no explicit cap is configured.
const maxDelayCeiling = 10 * time.Minute

// Policy bounds the attempts made for a single target and the pause between
// them. Delays depend only on the attempt index.
type Policy struct {
	MaxAttempts int
	Strategy    string
	Delay       time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// DefaultPolicy mirrors the configuration defaults.
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.Default().Retry)
}

// PolicyFromConfig converts the retry section of the configuration.
func PolicyFromConfig(cfg config.RetryConfig) Policy {
	return Policy{
		MaxAttempts: cfg.MaxAttempts,
		Strategy:    cfg.Backoff,
		Delay:       cfg.Delay,
		Multiplier:  cfg.Multiplier,
		MaxDelay:    cfg.MaxDelay,
	}
}

// Validate rejects policies that could retry forever or wait a negative time.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return linkerrors.NewValidationError("retry.max_attempts", "must be at least 1", nil)
	}
	if p.Delay < 0 {
		return linkerrors.NewValidationError("retry.delay", "must not be negative", nil)
	}
	switch p.Strategy {
	case "", config.BackoffFixed:
	case config.BackoffExponential:
		if p.Multiplier < 1 {
			return linkerrors.NewValidationError("retry.multiplier", "must be at least 1", nil)
		}
	default:
		return linkerrors.NewValidationError("retry.backoff", fmt.Sprintf("unknown strategy %q", p.Strategy), nil)
	}
	return nil
}

// schedule returns a fresh delay sequence for one target. The n-th call to
// NextBackOff yields the pause after the n-th failed attempt.
func (p Policy) schedule() backoff.BackOff {
	if p.Strategy != config.BackoffExponential {
		return backoff.NewConstantBackOff(p.Delay)
	}

	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = maxDelayCeiling
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.Delay
	exp.Multiplier = p.Multiplier
	exp.MaxInterval = maxDelay
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	exp.Reset()
	return exp
}

// DelayFor reports the pause taken after the given failed attempt (1-based).
func (p Policy) DelayFor(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	sched := p.schedule()
	var d time.Duration
	for i := 0; i < attempt; i++ {
		d = sched.NextBackOff()
	}
	return d
}
