package events

import (
	"context"
	"time"

	"github.com/alexisbeaulieu97/linkretry/internal/model"
)

// Type identifies a lifecycle event emitted during a run.
type Type string

const (
	// RunStarted is emitted once before any target is attempted.
	RunStarted Type = "run.started"
	// RunCompleted is emitted after the report is assembled.
	RunCompleted Type = "run.completed"
	// TargetStarted is emitted before the first attempt of a target.
	TargetStarted Type = "target.started"
	// AttemptFinished is emitted after every checker invocation.
	AttemptFinished Type = "attempt.finished"
	// TargetRetrying is emitted when a failed attempt will be retried.
	TargetRetrying Type = "target.retrying"
	// TargetCompleted is emitted once a target has its verdict.
	TargetCompleted Type = "target.completed"
)

// Event carries the data relevant to its Type; unrelated fields are zero.
type Event struct {
	Type        Type
	Time        time.Time
	RunID       string
	Total       int
	Target      model.CheckTarget
	Attempt     int
	MaxAttempts int
	Delay       time.Duration
	Result      *model.AttemptResult
	Verdict     *model.TargetVerdict
	Report      *model.BatchReport
}

// Publisher accepts events. Publish must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Handler processes a published event. Returned errors are logged and do not
// stop delivery to other handlers.
type Handler func(context.Context, Event) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) {}
