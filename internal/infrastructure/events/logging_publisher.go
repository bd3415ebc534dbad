package events

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/linkretry/internal/logger"
)

// wildcard subscribes a handler to every event type.
const wildcard Type = "*"

// LoggingPublisher writes each event as a debug log entry and dispatches it
// synchronously to subscribers.
type LoggingPublisher struct {
	logger *logger.Logger
	subs   map[Type][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

var _ Publisher = (*LoggingPublisher)(nil)

// NewLoggingPublisher creates a publisher. log may be nil.
func NewLoggingPublisher(log *logger.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger: log,
		subs:   make(map[Type][]subscriptionEntry),
	}
}

// Publish logs the event and runs matching handlers in subscription order.
func (p *LoggingPublisher) Publish(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	p.mu.RLock()
	handlers := append([]subscriptionEntry(nil), p.subs[event.Type]...)
	handlers = append(handlers, p.subs[wildcard]...)
	p.mu.RUnlock()

	if p.logger.DebugEnabled() {
		p.logger.WithFields(eventFields(event)).Debug("event")
	}

	for _, entry := range handlers {
		if entry.handler == nil {
			continue
		}
		if err := entry.handler(ctx, event); err != nil {
			p.logger.WithFields(map[string]any{"event_type": string(event.Type)}).Error(err, "event handler failed")
		}
	}
}

// Subscribe registers a handler for one event type.
func (p *LoggingPublisher) Subscribe(eventType Type, handler Handler) Subscription {
	if p == nil || handler == nil {
		return noopSubscription{}
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[eventType] = append(p.subs[eventType], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	return subscription{
		cancel: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			handlers := p.subs[eventType]
			for i, entry := range handlers {
				if entry.id == id {
					p.subs[eventType] = append(handlers[:i], handlers[i+1:]...)
					break
				}
			}
		},
	}
}

// SubscribeAll registers a handler for every event type.
func (p *LoggingPublisher) SubscribeAll(handler Handler) Subscription {
	return p.Subscribe(wildcard, handler)
}

func eventFields(event Event) map[string]any {
	fields := map[string]any{"event_type": string(event.Type)}
	if event.RunID != "" {
		fields["run_id"] = event.RunID
	}
	if event.Target.Path != "" {
		fields["target"] = event.Target.Path
	}
	if event.Attempt > 0 {
		fields["attempt"] = event.Attempt
	}
	if event.Delay > 0 {
		fields["delay"] = event.Delay.String()
	}
	if event.Result != nil {
		fields["outcome"] = string(event.Result.Outcome)
		fields["exit_code"] = event.Result.ExitCode
		fields["duration"] = event.Result.Duration.String()
	}
	if event.Verdict != nil {
		fields["status"] = string(event.Verdict.Status)
	}
	return fields
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler Handler
}
