package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/panel-triage/internal/llm"
	"github.com/sells-group/panel-triage/internal/model"
)

var testExamples = []model.Example{
	{Task: "Help patient fill weekly pill organizer", Category: model.CategoryMedicationAdherence},
	{Task: "Assist with Section 8 housing application", Category: model.CategorySocialStability},
}

func TestLLMClassifier_Classify(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.MatchedBy(func(p llm.Prompt) bool {
		return p.CacheSystem &&
			p.Phase == "classify" &&
			p.MaxTokens == 32 &&
			len(p.Messages) == 1 &&
			p.Messages[0].Role == "user" &&
			assert.ObjectsAreEqual(BuildSystemPrompt(testExamples), p.System)
	})).Return(&llm.Completion{Text: "  Clinical Stability\n"}, nil)

	c := NewLLMClassifier(mc, testExamples, Options{MaxTokens: 32})
	got, err := c.Classify(context.Background(), "Patient needs help building a crisis safety plan")
	require.NoError(t, err)
	assert.Equal(t, "Clinical Stability", got)
	mc.AssertExpectations(t)
}

func TestLLMClassifier_UnknownCategoryPassesThrough(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "Category: Housing"}, nil)

	c := NewLLMClassifier(mc, nil, Options{})
	got, err := c.Classify(context.Background(), "find housing")
	require.NoError(t, err)
	assert.Equal(t, "Category: Housing", got)
}

func TestLLMClassifier_Unavailable(t *testing.T) {
	mc := new(mockCompleter)
	cause := errors.New("connection refused")
	mc.On("Complete", mock.Anything, mock.Anything).Return(nil, cause).Once()
	mc.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "  "}, nil).Once()

	c := NewLLMClassifier(mc, nil, Options{})

	_, err := c.Classify(context.Background(), "task")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClassifierUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "mock/llm unavailable")

	_, err = c.Classify(context.Background(), "task")
	assert.True(t, errors.Is(err, ErrClassifierUnavailable))
	assert.Contains(t, err.Error(), "empty response")
}

func TestBuildSystemPrompt(t *testing.T) {
	p := BuildSystemPrompt(testExamples)
	for _, c := range model.Categories {
		assert.Contains(t, p, "- "+c+"\n")
	}
	assert.Contains(t, p, "Here are some example tasks and their categories:")
	assert.Contains(t, p, `- "Help patient fill weekly pill organizer" → Medication Adherence`)

	assert.NotContains(t, BuildSystemPrompt(nil), "Here are some example tasks")
}

func TestBuildTaskPrompt(t *testing.T) {
	p := BuildTaskPrompt(`Call "Dr. Lee" re: labs`)
	assert.Contains(t, p, `"Call \"Dr. Lee\" re: labs"`)
	assert.Contains(t, p, "Respond with only the category name.")
}
