package retry

import (
	"context"
	"time"

	"ipam-migrator/core/remote"

	"go.uber.org/zap"
)

// Executor wraps a single mutating call with bounded retries and linear
// backoff. Only failures classified as transient are retried; semantic and
// unknown failures propagate immediately. RetryAll restores the legacy
// behavior of retrying every failure regardless of classification.
type Executor struct {
	attempts int
	delay    time.Duration
	retryAll bool
	log      *zap.Logger

	// sleep is injectable for tests; it must honor ctx cancellation.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes an Executor.
type Option func(*Executor)

// WithRetryAll retries every failure, not just transient ones. Legacy mode.
func WithRetryAll() Option {
	return func(e *Executor) { e.retryAll = true }
}

// WithSleeper replaces the backoff sleep, for tests.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Executor) { e.sleep = sleep }
}

// New creates an Executor performing at most attempts calls, waiting
// delay × attemptNumber between consecutive tries.
func New(attempts int, delay time.Duration, log *zap.Logger, opts ...Option) *Executor {
	if attempts < 1 {
		attempts = 1
	}
	e := &Executor{
		attempts: attempts,
		delay:    delay,
		log:      log,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do runs fn until it succeeds, fails non-retryably, or exhausts the attempt
// ceiling. The last failure is returned as-is so callers can still inspect
// its classification.
func (e *Executor) Do(ctx context.Context, op string, fn func() error) error {
	var last error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		last = fn()
		if last == nil {
			return nil
		}

		if !e.retryable(last) || attempt == e.attempts {
			return last
		}

		wait := e.delay * time.Duration(attempt)
		e.log.Warn("retrying after transient failure",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.attempts),
			zap.Duration("wait", wait),
			zap.Error(last),
		)
		if err := e.sleep(ctx, wait); err != nil {
			return err
		}
	}
	return last
}

func (e *Executor) retryable(err error) bool {
	if e.retryAll {
		// Even legacy mode does not retry known duplicates; the record
		// is already there.
		return !remote.IsDuplicate(err)
	}
	return remote.IsTransient(err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
