// Package resilience wraps provider calls that may be throttled.
package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WaitConfig controls how throttled calls are re-attempted. Only errors
// accepted by ShouldRetry are re-attempted; everything else returns at once.
type WaitConfig struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int

	// Wait is the fixed pause between attempts.
	Wait time.Duration

	// ShouldRetry decides whether an error is worth another attempt.
	// Defaults to IsRateLimited.
	ShouldRetry func(err error) bool

	// OnRetry is called before each pause.
	OnRetry func(attempt int, err error)
}

// RateLimitWait returns the policy used for provider 429s: pause one second
// and try again, a bounded number of times.
func RateLimitWait() WaitConfig {
	return WaitConfig{
		MaxAttempts: 5,
		Wait:        time.Second,
	}
}

// DoVal runs fn, re-attempting throttled failures according to cfg.
// Context cancellation stops immediately.
func DoVal[T any](ctx context.Context, cfg WaitConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = IsRateLimited
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !shouldRetry(err) || attempt == cfg.MaxAttempts {
			return zero, lastErr
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}

		timer := time.NewTimer(cfg.Wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}

// RetryLogger returns an OnRetry callback that logs each wait.
func RetryLogger(service, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("rate limited, waiting",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
