// Package llm gives the classifier and the documentation assistant one
// provider-neutral way to ask a language model for a completion.
package llm

import (
	"context"
	"strings"
)

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)
	// Name identifies the provider and model for logs.
	Name() string
}

// Prompt is a provider-neutral request.
type Prompt struct {
	System string
	// CacheSystem asks providers that support it to cache the system prompt.
	CacheSystem bool
	Messages    []Turn
	MaxTokens   int
	Temperature float64
	// Phase labels the request in cost logs, e.g. "classify" or "docassist".
	Phase string
}

// Turn is one conversational message.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// User builds a user turn.
func User(content string) Turn { return Turn{Role: "user", Content: content} }

// Assistant builds an assistant turn.
func Assistant(content string) Turn { return Turn{Role: "assistant", Content: content} }

// Completion is the model output.
type Completion struct {
	Text             string
	Model            string
	InputTokens      int64
	OutputTokens     int64
	CacheWriteTokens int64
	CacheReadTokens  int64
}

// Trimmed returns the completion text without surrounding whitespace.
func (c *Completion) Trimmed() string {
	return strings.TrimSpace(c.Text)
}
