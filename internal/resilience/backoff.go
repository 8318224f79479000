// Package resilience keeps a flaky language model provider from failing a
// whole batch: transient errors are retried on a backoff schedule, and a
// breaker stops calling a provider that keeps failing.
package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/config"
)

// Backoff is the retry schedule for one provider call.
type Backoff struct {
	Attempts int // total tries, including the first
	Initial  time.Duration
	Max      time.Duration
	Jitter   float64 // fraction of each delay randomized in either direction
}

const (
	defaultAttempts = 3
	defaultInitial  = 500 * time.Millisecond
	defaultMax      = 10 * time.Second
	defaultJitter   = 0.2
)

// BackoffFromConfig reads classifier.retry. Zero values keep the defaults.
func BackoffFromConfig(c config.RetryConfig) Backoff {
	return Backoff{
		Attempts: c.MaxAttempts,
		Initial:  time.Duration(c.InitialBackoffMs) * time.Millisecond,
		Max:      time.Duration(c.MaxBackoffMs) * time.Millisecond,
		Jitter:   defaultJitter,
	}.withDefaults()
}

func (b Backoff) withDefaults() Backoff {
	if b.Attempts <= 0 {
		b.Attempts = defaultAttempts
	}
	if b.Initial <= 0 {
		b.Initial = defaultInitial
	}
	if b.Max <= 0 {
		b.Max = defaultMax
	}
	if b.Max < b.Initial {
		b.Max = b.Initial
	}
	if b.Jitter < 0 {
		b.Jitter = 0
	}
	return b
}

// Delay returns the wait before retry n, counting from 1. The delay doubles
// per retry up to Max.
func (b Backoff) Delay(n int) time.Duration {
	b = b.withDefaults()
	d := b.Initial
	for i := 1; i < n && d < b.Max; i++ {
		d *= 2
	}
	if d > b.Max {
		d = b.Max
	}
	if b.Jitter > 0 {
		d += time.Duration((rand.Float64()*2 - 1) * b.Jitter * float64(d))
	}
	return max(d, 0)
}

// Retry calls fn until it succeeds, fails with an error that is not
// transient, or runs out of attempts. The last error is returned as is.
func Retry[T any](ctx context.Context, b Backoff, provider string, fn func(context.Context) (T, error)) (T, error) {
	b = b.withDefaults()

	var zero T
	for attempt := 1; ; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		if attempt >= b.Attempts || !IsTransient(err) || ctx.Err() != nil {
			return zero, err
		}

		delay := b.Delay(attempt)
		zap.L().Warn("resilience: retrying provider call",
			zap.String("provider", provider),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, err
		case <-timer.C:
		}
	}
}
