// Package cost tracks language model token usage for a run and estimates
// what it cost.
package cost

import (
	"sort"
	"strings"
	"sync"
)

// Rates holds per-model pricing. Keys are matched as substrings of the model
// id, so "haiku" prices every Haiku release.
type Rates struct {
	Models map[string]ModelRate `yaml:"models" mapstructure:"models"`
}

// ModelRate holds per-model token pricing (per million tokens).
type ModelRate struct {
	Input         float64 `yaml:"input" mapstructure:"input"`
	Output        float64 `yaml:"output" mapstructure:"output"`
	CacheWriteMul float64 `yaml:"cache_write_mul" mapstructure:"cache_write_mul"`
	CacheReadMul  float64 `yaml:"cache_read_mul" mapstructure:"cache_read_mul"`
}

// Usage is token consumption for one model.
type Usage struct {
	Requests         int64 `json:"requests"`
	InputTokens      int64 `json:"input_tokens"`
	OutputTokens     int64 `json:"output_tokens"`
	CacheWriteTokens int64 `json:"cache_write_tokens"`
	CacheReadTokens  int64 `json:"cache_read_tokens"`
}

func (u *Usage) add(o Usage) {
	u.Requests += o.Requests
	u.InputTokens += o.InputTokens
	u.OutputTokens += o.OutputTokens
	u.CacheWriteTokens += o.CacheWriteTokens
	u.CacheReadTokens += o.CacheReadTokens
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Rate returns the pricing for model. Local models have no rate.
func (c *Calculator) Rate(model string) (ModelRate, bool) {
	if r, ok := c.rates.Models[model]; ok {
		return r, true
	}
	// Longest key wins so "claude-haiku" beats "haiku".
	best := ""
	for key := range c.rates.Models {
		if strings.Contains(model, key) && len(key) > len(best) {
			best = key
		}
	}
	if best == "" {
		return ModelRate{}, false
	}
	return c.rates.Models[best], true
}

// Tokens computes the cost in USD of usage on model. Unknown models cost 0.
func (c *Calculator) Tokens(model string, u Usage) float64 {
	rate, ok := c.Rate(model)
	if !ok {
		return 0
	}

	inCost := (float64(u.InputTokens) / 1e6) * rate.Input
	outCost := (float64(u.OutputTokens) / 1e6) * rate.Output
	cwCost := (float64(u.CacheWriteTokens) / 1e6) * rate.Input * rate.CacheWriteMul
	crCost := (float64(u.CacheReadTokens) / 1e6) * rate.Input * rate.CacheReadMul

	return inCost + outCost + cwCost + crCost
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Models: map[string]ModelRate{
			"haiku":  {Input: 1.00, Output: 5.00, CacheWriteMul: 1.25, CacheReadMul: 0.1},
			"sonnet": {Input: 3.00, Output: 15.00, CacheWriteMul: 1.25, CacheReadMul: 0.1},
			"opus":   {Input: 15.00, Output: 75.00, CacheWriteMul: 1.25, CacheReadMul: 0.1},
		},
	}
}

// ModelUsage is the usage and estimated cost of one model.
type ModelUsage struct {
	Model   string  `json:"model"`
	Usage   Usage   `json:"usage"`
	CostUSD float64 `json:"cost_usd"`
}

// Tracker accumulates usage per model. It is safe for concurrent use.
type Tracker struct {
	calc *Calculator

	mu      sync.Mutex
	byModel map[string]*Usage
}

// NewTracker creates a Tracker that prices usage with calc.
func NewTracker(calc *Calculator) *Tracker {
	return &Tracker{calc: calc, byModel: make(map[string]*Usage)}
}

// Record adds u to model's total.
func (t *Tracker) Record(model string, u Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.byModel[model]
	if !ok {
		cur = &Usage{}
		t.byModel[model] = cur
	}
	cur.add(u)
}

// Snapshot returns per-model usage sorted by model id.
func (t *Tracker) Snapshot() []ModelUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ModelUsage, 0, len(t.byModel))
	for model, u := range t.byModel {
		out = append(out, ModelUsage{Model: model, Usage: *u, CostUSD: t.calc.Tokens(model, *u)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// Total sums usage and cost over every model.
func (t *Tracker) Total() (Usage, float64) {
	var total Usage
	var cost float64
	for _, mu := range t.Snapshot() {
		total.add(mu.Usage)
		cost += mu.CostUSD
	}
	return total, cost
}
