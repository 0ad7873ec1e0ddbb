// Package resilience retries flaky remote calls at a fixed pace and decides
// which failures deserve another attempt.
package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryConfig is the number of attempts (first try included) and the pause
// between them.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration

	// OnRetry is called before each pause.
	OnRetry func(attempt int, err error)
}

// FixedRetryConfig retries up to attempts times, delay apart.
func FixedRetryConfig(attempts int, delay time.Duration) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, Delay: delay}
}

// FromSeconds builds a RetryConfig from config values in seconds.
// Non-positive attempts fall back to a single try.
func FromSeconds(attempts int, delaySecs float64) RetryConfig {
	if attempts <= 0 {
		attempts = 1
	}
	return FixedRetryConfig(attempts, time.Duration(delaySecs*float64(time.Second)))
}

// DoVal runs fn until it succeeds, fails with a non-transient error, runs
// out of attempts or ctx is done. The last error is returned.
func DoVal[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := max(cfg.MaxAttempts, 1)
	delay := max(cfg.Delay, 0)

	var zero T
	var lastErr error
	for attempt := 1; ; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err
		if attempt >= attempts || ctx.Err() != nil || !IsTransient(err) {
			return zero, lastErr
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
}

// RetryLogger returns an OnRetry callback that logs at Warn.
func RetryLogger(service, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("retrying operation",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
