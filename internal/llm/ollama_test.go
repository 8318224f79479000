package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/panel-triage/internal/resilience"
	"github.com/sells-group/panel-triage/pkg/ollama"
)

func TestOllamaCompleter_Complete(t *testing.T) {
	mc := new(mockOllamaClient)
	mc.On("Chat", mock.Anything, ollama.ChatRequest{
		Model:     "llama3.2",
		System:    "Classify.",
		Messages:  []ollama.Message{{Role: "user", Content: "Task: refill"}, {Role: "assistant", Content: "ok"}},
		MaxTokens: 64,
	}).Return(&ollama.ChatResponse{
		Model:   "llama3.2",
		Content: " Medication Adherence ",
		Usage:   ollama.Usage{PromptTokens: 90, CompletionTokens: 3},
	}, nil)

	c := NewOllamaCompleter(mc, "llama3.2")
	assert.Equal(t, "ollama/llama3.2", c.Name())

	out, err := c.Complete(context.Background(), Prompt{
		System:    "Classify.",
		Messages:  []Turn{User("Task: refill"), Assistant("ok")},
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.Equal(t, "Medication Adherence", out.Trimmed())
	assert.Equal(t, int64(3), out.OutputTokens)
	mc.AssertExpectations(t)
}

func TestOllamaCompleter_TransientStatus(t *testing.T) {
	mc := new(mockOllamaClient)
	mc.On("Chat", mock.Anything, mock.Anything).
		Return(nil, &ollama.StatusError{StatusCode: 503, Err: errors.New("model loading")}).Once()
	mc.On("Chat", mock.Anything, mock.Anything).
		Return(nil, &ollama.StatusError{StatusCode: 404, Err: errors.New("model not found")}).Once()

	c := NewOllamaCompleter(mc, "llama3.2")

	_, err := c.Complete(context.Background(), Prompt{})
	assert.True(t, resilience.IsTransient(err))

	_, err = c.Complete(context.Background(), Prompt{})
	assert.False(t, resilience.IsTransient(err))
}
