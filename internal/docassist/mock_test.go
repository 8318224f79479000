package docassist

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/panel-triage/internal/llm"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, p llm.Prompt) (*llm.Completion, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Completion), args.Error(1)
}

func (m *mockCompleter) Name() string { return "mock/llm" }

type mockAnswerer struct {
	mock.Mock
}

func (m *mockAnswerer) Answer(ctx context.Context, followup string) (string, error) {
	args := m.Called(ctx, followup)
	return args.String(0), args.Error(1)
}
