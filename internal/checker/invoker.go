package checker

import (
	"context"

	"github.com/alexisbeaulieu97/linkretry/internal/model"
)

// Invoker runs the link checker once against one target.
//
// A checker that runs and reports broken links yields an AttemptResult with
// OutcomeFailure and a nil error. A non-nil error means the checker could not
// be run at all, or ctx ended while it was running.
type Invoker interface {
	Invoke(ctx context.Context, target model.CheckTarget) (model.AttemptResult, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, target model.CheckTarget) (model.AttemptResult, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, target model.CheckTarget) (model.AttemptResult, error) {
	return f(ctx, target)
}
