package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/config"
)

// ErrBreakerOpen is returned without calling the provider while its breaker
// is open. It is not transient, so Retry gives up on it immediately.
var ErrBreakerOpen = eris.New("resilience: provider breaker open")

// BreakerState is where a Breaker sits in its open/close cycle.
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen // cooldown elapsed, next call decides
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// BreakerConfig sets when a Breaker opens and how long it stays open.
type BreakerConfig struct {
	Threshold int // consecutive transient failures that open the breaker
	Cooldown  time.Duration
}

// BreakerConfigFrom reads classifier.circuit. Zero values keep the defaults
// of 5 failures and 30s.
func BreakerConfigFrom(c config.CircuitConfig) BreakerConfig {
	return BreakerConfig{
		Threshold: c.FailureThreshold,
		Cooldown:  time.Duration(c.ResetTimeoutSecs) * time.Second,
	}
}

// Breaker stops calls to one provider after repeated transient failures.
// Permanent errors such as a rejected request say nothing about provider
// health and leave it untouched.
type Breaker struct {
	provider string
	cfg      BreakerConfig
	now      func() time.Time

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
}

// NewBreaker creates a closed breaker for provider.
func NewBreaker(provider string, cfg BreakerConfig) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{provider: provider, cfg: cfg, now: time.Now}
}

// Call runs fn through b.
func Call[T any](ctx context.Context, b *Breaker, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if !b.allow() {
		return zero, ErrBreakerOpen
	}
	val, err := fn(ctx)
	b.record(err)
	return val, err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		b.setState(StateHalfOpen)
	}
	return b.state != StateOpen
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !IsTransient(err) {
		b.failures = 0
		if b.state == StateHalfOpen {
			b.setState(StateClosed)
		}
		return
	}

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.cfg.Threshold {
		b.openedAt = b.now()
		b.setState(StateOpen)
	}
}

// setState must be called with mu held.
func (b *Breaker) setState(to BreakerState) {
	if b.state == to {
		return
	}
	zap.L().Warn("resilience: provider breaker state change",
		zap.String("provider", b.provider),
		zap.Stringer("from", b.state),
		zap.Stringer("to", to),
		zap.Int("failures", b.failures),
	)
	b.state = to
}
