package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/classify"
	"github.com/sells-group/panel-triage/internal/config"
	"github.com/sells-group/panel-triage/internal/cost"
	"github.com/sells-group/panel-triage/internal/llm"
	"github.com/sells-group/panel-triage/internal/model"
	"github.com/sells-group/panel-triage/internal/registry"
)

// loadExamples reads the few-shot examples. An unset path means no examples.
func loadExamples(ctx context.Context) ([]model.Example, error) {
	if cfg.Inputs.Examples == "" {
		return nil, nil
	}
	examples, err := registry.LoadExamples(ctx, cfg.Inputs.Examples)
	if err != nil {
		return nil, eris.Wrap(err, "load examples")
	}
	return examples, nil
}

// initClassifier builds the classifier for the configured provider. The
// keyword provider runs fully offline and has no usage tracker.
func initClassifier(examples []model.Example) (classify.Classifier, *cost.Tracker, error) {
	if cfg.Classifier.Provider == config.ProviderKeyword {
		zap.L().Info("using offline keyword classifier", zap.Int("examples", len(examples)))
		return classify.NewKeywordClassifier(examples), nil, nil
	}

	completer, err := llm.New(cfg)
	if err != nil {
		return nil, nil, eris.Wrap(err, "init classifier")
	}
	zap.L().Info("using language model classifier",
		zap.String("provider", completer.Name()),
		zap.Int("examples", len(examples)),
	)
	return classify.NewLLMClassifier(completer, examples, classify.Options{
		MaxTokens:   cfg.Classifier.MaxTokens,
		Temperature: cfg.Classifier.Temperature,
	}), completer.Usage(), nil
}

// printUsage writes one line per model with token counts and estimated cost.
func printUsage(w io.Writer, usage *cost.Tracker) {
	if usage == nil {
		return
	}
	for _, mu := range usage.Snapshot() {
		fmt.Fprintf(w, "LLM usage %s: %d requests, %d input / %d output tokens, ~$%.4f\n",
			mu.Model, mu.Usage.Requests, mu.Usage.InputTokens, mu.Usage.OutputTokens, mu.CostUSD)
	}
}
