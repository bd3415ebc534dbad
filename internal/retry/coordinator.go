package retry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/alexisbeaulieu97/linkretry/internal/checker"
	"github.com/alexisbeaulieu97/linkretry/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/linkretry/internal/logger"
	"github.com/alexisbeaulieu97/linkretry/internal/model"
	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures a Coordinator. Zero values select sequential processing,
// no pacing, no timeout and the default policy.
type Options struct {
	Policy    Policy
	Parallel  int
	RateLimit float64
	Timeout   time.Duration
	Publisher events.Publisher
	Logger    *logger.Logger

	// Hooks for tests.
	Sleep SleepFunc
	Now   func() time.Time
	RunID func() string
}

// Coordinator drives every target through its attempt budget and aggregates
// the verdicts into a BatchReport.
type Coordinator struct {
	invoker   checker.Invoker
	policy    Policy
	parallel  int
	limiter   *rate.Limiter
	timeout   time.Duration
	publisher events.Publisher
	log       *logger.Logger
	sleep     SleepFunc
	now       func() time.Time
	runID     func() string
}

// New builds a Coordinator around invoker.
func New(invoker checker.Invoker, opts Options) (*Coordinator, error) {
	if invoker == nil {
		return nil, linkerrors.NewValidationError("checker", "invoker is nil", nil)
	}

	policy := opts.Policy
	if policy.MaxAttempts == 0 {
		policy = DefaultPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if opts.Parallel < 0 {
		return nil, linkerrors.NewValidationError("run.parallel", "must not be negative", nil)
	}
	if opts.RateLimit < 0 {
		return nil, linkerrors.NewValidationError("run.rate_limit", "must not be negative", nil)
	}

	c := &Coordinator{
		invoker:   invoker,
		policy:    policy,
		parallel:  opts.Parallel,
		timeout:   opts.Timeout,
		publisher: opts.Publisher,
		log:       opts.Logger,
		sleep:     opts.Sleep,
		now:       opts.Now,
		runID:     opts.RunID,
	}
	if c.parallel == 0 {
		c.parallel = 1
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	if c.publisher == nil {
		c.publisher = events.Discard
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.runID == nil {
		c.runID = uuid.NewString
	}
	return c, nil
}

// Policy returns the policy in effect.
func (c *Coordinator) Policy() Policy {
	return c.policy
}

// Process runs the attempt loop for one target. It returns an error only for
// an invocation fault or when ctx ends before a verdict is reached; in the
// latter case the returned verdict is marked unknown.
func (c *Coordinator) Process(ctx context.Context, target model.CheckTarget) (model.TargetVerdict, error) {
	run := newTargetRun(target, c.now())
	sched := c.policy.schedule()

	c.publisher.Publish(ctx, events.Event{
		Type:        events.TargetStarted,
		Target:      target,
		MaxAttempts: c.policy.MaxAttempts,
	})

	for {
		if err := ctx.Err(); err != nil {
			return run.verdict(c.now()), err
		}
		attempt, err := run.begin()
		if err != nil {
			return run.verdict(c.now()), err
		}
		log := c.log.WithTarget(target.Path, attempt)

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return run.verdict(c.now()), ctxErrOr(ctx, err)
			}
		}

		log.Debug("invoking checker")
		res, err := c.invoker.Invoke(ctx, target)
		if err != nil {
			if linkerrors.IsInvocation(err) {
				return run.verdict(c.now()), err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return run.verdict(c.now()), ctxErr
			}
			return run.verdict(c.now()), linkerrors.NewInvocationError("", target.Path, err)
		}
		res.Target = target
		res.Attempt = attempt
		run.record(res)

		c.publisher.Publish(ctx, events.Event{
			Type:        events.AttemptFinished,
			Target:      target,
			Attempt:     attempt,
			MaxAttempts: c.policy.MaxAttempts,
			Result:      &res,
		})

		if res.Succeeded() {
			if err := run.to(model.StatePassed); err != nil {
				return run.verdict(c.now()), err
			}
			if attempt > 1 {
				log.Info("passed after retry")
			}
			return run.verdict(c.now()), nil
		}

		if attempt >= c.policy.MaxAttempts {
			if err := run.to(model.StateFailed); err != nil {
				return run.verdict(c.now()), err
			}
			log.WithFields(map[string]any{"exit_code": res.ExitCode}).Warn("retry budget exhausted")
			return run.verdict(c.now()), nil
		}

		if err := run.to(model.StateRetrying); err != nil {
			return run.verdict(c.now()), err
		}
		delay := sched.NextBackOff()
		log.WithFields(map[string]any{"exit_code": res.ExitCode, "delay": delay.String()}).Info("checker reported failures, retrying")
		c.publisher.Publish(ctx, events.Event{
			Type:        events.TargetRetrying,
			Target:      target,
			Attempt:     attempt,
			MaxAttempts: c.policy.MaxAttempts,
			Delay:       delay,
			Result:      &res,
		})

		if err := c.sleep(ctx, delay); err != nil {
			return run.verdict(c.now()), ctxErrOr(ctx, err)
		}
	}
}

// Run processes every target and returns the report in input order.
//
// An invocation fault cancels outstanding work and is returned together with
// a report holding only the verdicts finalized before the fault. When ctx or
// the configured timeout ends the run, unfinished targets are reported as
// unknown and the error is nil.
func (c *Coordinator) Run(ctx context.Context, targets []model.CheckTarget) (*model.BatchReport, error) {
	report := &model.BatchReport{RunID: c.runID(), StartedAt: c.now()}
	log := c.log.WithRun(report.RunID)

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.publisher.Publish(runCtx, events.Event{
		Type:        events.RunStarted,
		RunID:       report.RunID,
		Total:       len(targets),
		MaxAttempts: c.policy.MaxAttempts,
	})
	log.WithFields(map[string]any{
		"targets":      len(targets),
		"max_attempts": c.policy.MaxAttempts,
		"parallel":     c.parallel,
	}).Info("starting link check")

	// One slot per target; each worker writes only its own index.
	verdicts := make([]model.TargetVerdict, len(targets))
	final := make([]bool, len(targets))
	touched := make([]bool, len(targets))

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(c.parallel)

	for i, target := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			verdict, err := c.Process(gctx, target)
			if err != nil {
				if linkerrors.IsInvocation(err) {
					return err
				}
				// Interrupted mid-target: keep what was learned, status unknown.
				verdicts[i] = verdict
				touched[i] = true
				return nil
			}
			verdicts[i] = verdict
			final[i] = true
			c.publisher.Publish(gctx, events.Event{
				Type:    events.TargetCompleted,
				RunID:   report.RunID,
				Target:  target,
				Verdict: &verdict,
			})
			return nil
		})
	}

	waitErr := g.Wait()
	report.Duration = c.now().Sub(report.StartedAt)

	if waitErr != nil {
		report.Aborted = true
		for i := range targets {
			if final[i] {
				report.Verdicts = append(report.Verdicts, verdicts[i])
			}
		}
		log.Error(waitErr, "checker could not be run, aborting")
		return report, waitErr
	}

	report.TimedOut = errors.Is(runCtx.Err(), context.DeadlineExceeded)
	for i, target := range targets {
		if final[i] {
			continue
		}
		if !touched[i] {
			verdicts[i] = unfinishedVerdict(target)
		}
		c.publisher.Publish(ctx, events.Event{
			Type:    events.TargetCompleted,
			RunID:   report.RunID,
			Target:  target,
			Verdict: &verdicts[i],
		})
	}
	report.Verdicts = verdicts

	counts := report.Counts()
	fields := map[string]any{
		"passed":   counts.Passed,
		"failed":   counts.Failed,
		"unknown":  counts.Unknown,
		"attempts": report.TotalAttempts(),
		"duration": report.Duration.String(),
	}
	if report.TimedOut {
		log.WithFields(fields).Warn("run timed out before every target finished")
	} else if runCtx.Err() != nil {
		log.WithFields(fields).Warn("run cancelled before every target finished")
	} else {
		log.WithFields(fields).Info("link check complete")
	}

	c.publisher.Publish(ctx, events.Event{
		Type:   events.RunCompleted,
		RunID:  report.RunID,
		Total:  len(targets),
		Report: report,
	})

	return report, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ctxErrOr prefers the context's error so callers can tell cancellation apart
// from other failures.
func ctxErrOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
