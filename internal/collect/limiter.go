package collect

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter paces provider calls. After a 429 the rate halves, down to a
// quarter of the configured rate; each success recovers 20% up to the
// configured rate.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	ceiling rate.Limit
	floor   rate.Limit
	current rate.Limit
}

// NewLimiter creates a limiter allowing perSecond requests. perSecond <= 0
// disables pacing.
func NewLimiter(perSecond float64) *Limiter {
	limit := rate.Limit(perSecond)
	burst := int(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(limit, burst),
		ceiling: limit,
		floor:   limit / 4,
		current: limit,
	}
}

// Wait blocks until a request may proceed.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// OnSuccess nudges the rate back toward the configured ceiling.
func (l *Limiter) OnSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current >= l.ceiling {
		return
	}
	next := l.current * 1.2
	if next > l.ceiling {
		next = l.ceiling
	}
	l.current = next
	l.limiter.SetLimit(next)
}

// OnRateLimit halves the rate.
func (l *Limiter) OnRateLimit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ceiling == rate.Inf {
		return
	}
	next := l.current * 0.5
	if next < l.floor {
		next = l.floor
	}
	l.current = next
	l.limiter.SetLimit(next)
	zap.L().Warn("collect: reducing request rate after 429", zap.Float64("rate", float64(next)))
}

// Limit returns the current rate.
func (l *Limiter) Limit() rate.Limit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
