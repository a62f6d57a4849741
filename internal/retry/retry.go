// Package retry wraps a unit of work with bounded fixed-delay retry
// semantics. Every failure is retried identically until the attempt budget
// is spent; the executor does not classify errors. This matches the
// documented policy for both provider calls: auth failures are retried
// exactly like transient network failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sethretry "github.com/sethvargo/go-retry"

	"github.com/dailymentor/dailymentor/internal/errs"
)

// Policy describes a bounded fixed-delay retry policy. MaxAttempts is the
// total number of invocations, including the first one. Delay is the fixed
// sleep between attempts; it is not jittered and does not grow.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// ExhaustedError is returned after every attempt allowed by the policy has
// failed. It wraps the error of the last attempt.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do invokes work under the given policy and returns its result. The work
// must be idempotent: it is invoked once per attempt with the same effect
// each time. On success the result is returned immediately with no further
// attempts. If the surrounding context is cancelled between attempts, the
// context error is returned as-is; after the final failed attempt an
// *ExhaustedError is returned carrying the attempt count and last error.
func Do[T any](ctx context.Context, p Policy, log *slog.Logger, op string, work func(context.Context) (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		return zero, errs.NewConfigError(fmt.Sprintf("retry policy for %s requires at least one attempt", op), nil)
	}
	if log == nil {
		log = slog.Default()
	}

	// go-retry counts the initial attempt separately, so the policy's
	// total attempt count maps to MaxAttempts-1 retries.
	backoff := sethretry.WithMaxRetries(
		uint64(p.MaxAttempts-1),
		sethretry.BackoffFunc(func() (time.Duration, bool) {
			return p.Delay, false
		}),
	)

	var result T
	attempts := 0

	err := sethretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		v, err := work(ctx)
		if err != nil {
			log.Warn("attempt failed",
				"operation", op,
				"attempt", attempts,
				"max_attempts", p.MaxAttempts,
				"error", err)
			return sethretry.RetryableError(err)
		}
		result = v
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn("retry loop cancelled", "operation", op, "attempts", attempts)
			return zero, err
		}
		log.Error("retries exhausted", "operation", op, "attempts", attempts, "error", err)
		return zero, &ExhaustedError{Attempts: attempts, Err: err}
	}

	if attempts > 1 {
		log.Info("succeeded after retry", "operation", op, "attempts", attempts)
	}
	return result, nil
}
