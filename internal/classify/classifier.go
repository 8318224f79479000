// Package classify assigns a care-management category to a free-text task,
// either through a language model with few-shot examples or offline through
// keyword rules.
package classify

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/llm"
	"github.com/sells-group/panel-triage/internal/model"
)

// ErrClassifierUnavailable means no category could be obtained for a task.
// The task is still scored, with an empty category.
var ErrClassifierUnavailable = eris.New("classifier unavailable")

// UnavailableError carries the underlying provider failure. It matches
// ErrClassifierUnavailable with errors.Is.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("classify: %s unavailable: %v", e.Provider, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *UnavailableError) Unwrap() []error {
	return []error{ErrClassifierUnavailable, e.Err}
}

// Classifier returns the category for a task description.
type Classifier interface {
	Classify(ctx context.Context, task string) (string, error)
}

// LLMClassifier asks a language model for the category, one request per
// task. The returned category is the trimmed response text, unvalidated.
type LLMClassifier struct {
	completer   llm.Completer
	system      string
	maxTokens   int
	temperature float64
}

// Options configures an LLMClassifier.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// NewLLMClassifier builds the few-shot system prompt from examples once.
func NewLLMClassifier(c llm.Completer, examples []model.Example, opts Options) *LLMClassifier {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 64
	}
	return &LLMClassifier{
		completer:   c,
		system:      BuildSystemPrompt(examples),
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
}

// Classify implements Classifier.
func (l *LLMClassifier) Classify(ctx context.Context, task string) (string, error) {
	out, err := l.completer.Complete(ctx, llm.Prompt{
		System:      l.system,
		CacheSystem: true,
		Messages:    []llm.Turn{llm.User(BuildTaskPrompt(task))},
		MaxTokens:   l.maxTokens,
		Temperature: l.temperature,
		Phase:       "classify",
	})
	if err != nil {
		return "", &UnavailableError{Provider: l.completer.Name(), Err: err}
	}

	category := out.Trimmed()
	if category == "" {
		return "", &UnavailableError{Provider: l.completer.Name(), Err: eris.New("empty response")}
	}
	if !model.IsKnownCategory(category) {
		zap.L().Warn("classify: response is not a known category",
			zap.String("provider", l.completer.Name()),
			zap.String("category", category),
		)
	}
	return category, nil
}
