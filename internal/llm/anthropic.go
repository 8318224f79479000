package llm

import (
	"context"

	"github.com/sells-group/panel-triage/internal/resilience"
	"github.com/sells-group/panel-triage/pkg/anthropic"
)

// AnthropicCompleter sends prompts to the Anthropic Messages API.
type AnthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicCompleter creates a Completer for model.
func NewAnthropicCompleter(client anthropic.Client, model string) *AnthropicCompleter {
	return &AnthropicCompleter{client: client, model: model}
}

// Name implements Completer.
func (a *AnthropicCompleter) Name() string { return "anthropic/" + a.model }

// Complete implements Completer.
func (a *AnthropicCompleter) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	req := anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: int64(p.MaxTokens),
		Messages:  make([]anthropic.Message, len(p.Messages)),
	}
	for i, m := range p.Messages {
		req.Messages[i] = anthropic.Message{Role: m.Role, Content: m.Content}
	}
	if p.System != "" {
		if p.CacheSystem {
			req.System = anthropic.BuildCachedSystemBlocks(p.System)
		} else {
			req.System = []anthropic.SystemBlock{{Text: p.System}}
		}
	}
	temp := p.Temperature
	req.Temperature = &temp

	resp, err := a.client.CreateMessage(ctx, req)
	if err != nil {
		return nil, resilience.FromStatus(err, anthropic.StatusCode(err))
	}
	resp.Usage.LogCost(a.model, p.Phase)

	return &Completion{
		Text:             resp.Text(),
		Model:            resp.Model,
		InputTokens:      resp.Usage.InputTokens,
		OutputTokens:     resp.Usage.OutputTokens,
		CacheWriteTokens: resp.Usage.CacheCreationInputTokens,
		CacheReadTokens:  resp.Usage.CacheReadInputTokens,
	}, nil
}
