package fieldmigrate

import (
	"context"
	"time"
)

// Pauser waits for duration or until the context ends.
type Pauser func(executionContext context.Context, duration time.Duration) error

// ContextPause sleeps for duration unless executionContext is canceled first.
func ContextPause(executionContext context.Context, duration time.Duration) error {
	if duration <= 0 {
		return executionContext.Err()
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-executionContext.Done():
		return executionContext.Err()
	case <-timer.C:
		return nil
	}
}
