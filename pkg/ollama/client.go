// Package ollama talks to a local Ollama server through its OpenAI-compatible
// chat completions endpoint.
package ollama

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is where a local Ollama serves the OpenAI-compatible API.
const DefaultBaseURL = "http://localhost:11434/v1"

// Client defines the chat operation used by the classifier and the
// documentation assistant.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest is a single chat completion request.
type ChatRequest struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Message is one conversational turn.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ChatResponse is the first choice of a chat completion.
type ChatResponse struct {
	ID           string
	Model        string
	Content      string
	FinishReason string
	Usage        Usage
}

// Usage reports token counts for one request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// StatusError carries the HTTP status of a failed request.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string { return e.Err.Error() }

func (e *StatusError) Unwrap() error { return e.Err }

type openAIClient struct {
	client *openai.Client
}

// NewClient creates a client for baseURL. Ollama ignores the API key but the
// OpenAI client requires one, so an empty key is replaced with "ollama".
func NewClient(baseURL, apiKey string) Client {
	if apiKey == "" {
		apiKey = "ollama"
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = baseURL
	return &openAIClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *openAIClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    buildMessages(req),
		MaxTokens:   req.MaxTokens, //nolint:staticcheck // Ollama reads max_tokens
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, eris.Wrap(withStatus(err), "ollama: chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("ollama: no choices in response")
	}

	return &ChatResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

func buildMessages(req ChatRequest) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return messages
}

// withStatus lifts the HTTP status out of the go-openai error types.
func withStatus(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &StatusError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}
