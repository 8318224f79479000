package llm

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/resilience"
	"github.com/sells-group/panel-triage/pkg/ollama"
)

// OllamaCompleter sends prompts to a local Ollama server.
type OllamaCompleter struct {
	client ollama.Client
	model  string
}

// NewOllamaCompleter creates a Completer for model.
func NewOllamaCompleter(client ollama.Client, model string) *OllamaCompleter {
	return &OllamaCompleter{client: client, model: model}
}

// Name implements Completer.
func (o *OllamaCompleter) Name() string { return "ollama/" + o.model }

// Complete implements Completer.
func (o *OllamaCompleter) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	req := ollama.ChatRequest{
		Model:       o.model,
		System:      p.System,
		Messages:    make([]ollama.Message, len(p.Messages)),
		MaxTokens:   p.MaxTokens,
		Temperature: float32(p.Temperature),
	}
	for i, m := range p.Messages {
		req.Messages[i] = ollama.Message{Role: m.Role, Content: m.Content}
	}

	resp, err := o.client.Chat(ctx, req)
	if err != nil {
		var se *ollama.StatusError
		if errors.As(err, &se) {
			return nil, resilience.FromStatus(err, se.StatusCode)
		}
		return nil, err
	}

	zap.L().Debug("llm: ollama usage",
		zap.String("model", o.model),
		zap.String("phase", p.Phase),
		zap.Int("input_tokens", resp.Usage.PromptTokens),
		zap.Int("output_tokens", resp.Usage.CompletionTokens),
	)

	return &Completion{
		Text:         resp.Content,
		Model:        resp.Model,
		InputTokens:  int64(resp.Usage.PromptTokens),
		OutputTokens: int64(resp.Usage.CompletionTokens),
	}, nil
}
