package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	appLogger "github.com/cerberus-dev/cerberus/internal/shared/logger"
)

// WaitReady calls check until it succeeds, backing off exponentially, or
// until maxWait has elapsed. Used for boot-time connectivity only.
func WaitReady(ctx context.Context, what string, maxWait time.Duration, check func(context.Context) error) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 500 * time.Millisecond
	expBackoff.MaxInterval = 5 * time.Second
	expBackoff.Reset()

	var attempt int
	start := time.Now()
	for {
		attempt++
		err := check(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Since(start) >= maxWait {
			return fmt.Errorf("%s not ready after %d attempts: %w", what, attempt, err)
		}

		delay := expBackoff.NextBackOff()
		if delay == backoff.Stop {
			return fmt.Errorf("%s not ready: %w", what, err)
		}
		appLogger.Warn(what+" not ready, retrying", "attempt", attempt, "wait", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
