package llm

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/panel-triage/internal/config"
	"github.com/sells-group/panel-triage/internal/resilience"
	"github.com/sells-group/panel-triage/pkg/anthropic"
	"github.com/sells-group/panel-triage/pkg/ollama"
)

// ErrNoProvider is returned by New when the configured provider does not use
// a language model.
var ErrNoProvider = eris.New("llm: provider does not use a language model")

// New builds the guarded Completer for the configured provider.
func New(cfg *config.Config) (*Guarded, error) {
	var base Completer
	switch cfg.Classifier.Provider {
	case config.ProviderAnthropic:
		var opts []anthropic.Option
		if cfg.Anthropic.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.Anthropic.BaseURL))
		}
		base = NewAnthropicCompleter(anthropic.NewClient(cfg.Anthropic.Key, opts...), cfg.Anthropic.Model)
	case config.ProviderOllama:
		base = NewOllamaCompleter(ollama.NewClient(cfg.Ollama.BaseURL, cfg.Ollama.Key), cfg.Ollama.Model)
	case config.ProviderKeyword:
		return nil, ErrNoProvider
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.Classifier.Provider)
	}

	return NewGuarded(base, PolicyFromConfig(cfg.Classifier)), nil
}

// PolicyFromConfig converts classifier settings into a Policy.
func PolicyFromConfig(c config.ClassifierConfig) Policy {
	return Policy{
		RequestsPerSecond: c.RequestsPerSecond,
		Timeout:           time.Duration(c.TimeoutSecs) * time.Second,
		Backoff:           resilience.BackoffFromConfig(c.Retry),
		Breaker:           resilience.BreakerConfigFrom(c.Circuit),
	}
}
