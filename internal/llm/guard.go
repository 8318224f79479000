package llm

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/panel-triage/internal/cost"
	"github.com/sells-group/panel-triage/internal/resilience"
)

// Policy bounds how hard a provider is driven.
type Policy struct {
	// RequestsPerSecond caps request starts across all workers. Zero means
	// unlimited.
	RequestsPerSecond float64
	// Timeout bounds a single attempt. Zero means no per-attempt timeout.
	Timeout time.Duration
	Backoff resilience.Backoff
	Breaker resilience.BreakerConfig
}

// Guarded wraps a Completer with request pacing, retries of transient
// failures, a circuit breaker and usage tracking. It is safe for concurrent
// use.
type Guarded struct {
	next    Completer
	limiter *rate.Limiter
	breaker *resilience.Breaker
	backoff resilience.Backoff
	timeout time.Duration
	usage   *cost.Tracker
}

// NewGuarded wraps next with policy.
func NewGuarded(next Completer, policy Policy) *Guarded {
	limit := rate.Inf
	burst := 1
	if policy.RequestsPerSecond > 0 {
		limit = rate.Limit(policy.RequestsPerSecond)
		burst = max(1, int(policy.RequestsPerSecond))
	}

	return &Guarded{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		breaker: resilience.NewBreaker(next.Name(), policy.Breaker),
		backoff: policy.Backoff,
		timeout: policy.Timeout,
		usage:   cost.NewTracker(cost.NewCalculator(cost.DefaultRates())),
	}
}

// Name implements Completer.
func (g *Guarded) Name() string { return g.next.Name() }

// Usage returns the tokens consumed by successful completions so far.
func (g *Guarded) Usage() *cost.Tracker { return g.usage }

// Complete implements Completer.
func (g *Guarded) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	out, err := resilience.Retry(ctx, g.backoff, g.next.Name(), func(ctx context.Context) (*Completion, error) {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "llm: rate limit wait")
		}
		return resilience.Call(ctx, g.breaker, func(ctx context.Context) (*Completion, error) {
			if g.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, g.timeout)
				defer cancel()
			}
			return g.next.Complete(ctx, p)
		})
	})
	if err != nil {
		return nil, err
	}

	model := out.Model
	if model == "" {
		model = g.next.Name()
	}
	g.usage.Record(model, cost.Usage{
		Requests:         1,
		InputTokens:      out.InputTokens,
		OutputTokens:     out.OutputTokens,
		CacheWriteTokens: out.CacheWriteTokens,
		CacheReadTokens:  out.CacheReadTokens,
	})
	return out, nil
}
