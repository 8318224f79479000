package docassist

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/panel-triage/internal/llm"
	"github.com/sells-group/panel-triage/internal/model"
)

func noteIs(note string) interface{} {
	return mock.MatchedBy(func(p llm.Prompt) bool {
		return strings.Contains(p.Messages[0].Content, "\"\"\"\n"+note+"\n\"\"\"")
	})
}

func TestReview(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.MatchedBy(func(p llm.Prompt) bool {
		return p.MaxTokens == 1024 && p.Phase == "document"
	})).Return(&llm.Completion{Text: " What goals did they mention? "}, nil)

	a := New(mc, testFields, Options{})
	rev, err := a.Review(context.Background(), "note", "newly_engaged")
	require.NoError(t, err)
	assert.Equal(t, "What goals did they mention?", rev.Reply)
	assert.False(t, rev.Complete)
}

func TestReview_NoFieldsForPhase(t *testing.T) {
	mc := new(mockCompleter)
	a := New(mc, nil, Options{})

	rev, err := a.Review(context.Background(), "note", "ongoing")
	require.NoError(t, err)
	assert.True(t, rev.Complete)
	mc.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestReview_Error(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := New(mc, testFields, Options{}).Review(context.Background(), "note", "all")
	assert.ErrorContains(t, err, "docassist: review note")
}

func TestSession_CompletesAfterAnswer(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, noteIs("Met at clinic.")).Return(&llm.Completion{Text: "Where is the patient living?"}, nil)
	mc.On("Complete", mock.Anything, noteIs("Met at clinic.\nStaying with sister.")).Return(&llm.Completion{Text: CompletionMarker}, nil)

	ans := new(mockAnswerer)
	ans.On("Answer", mock.Anything, "Where is the patient living?").Return("Staying with sister.", nil)

	a := New(mc, testFields, Options{MaxRounds: 2})
	tr, err := a.Session(context.Background(), "Met at clinic.", "newly_engaged", ans)
	require.NoError(t, err)
	assert.True(t, tr.Complete)
	assert.Equal(t, "Met at clinic.\nStaying with sister.", tr.Note)
	assert.Equal(t, []Round{{Followup: "Where is the patient living?", Answer: "Staying with sister."}}, tr.Rounds)
	assert.Equal(t, CompletionMarker, tr.Last)
	mc.AssertNumberOfCalls(t, "Complete", 2)
}

func TestSession_StopsAtMaxRounds(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "Any goals?"}, nil)

	ans := new(mockAnswerer)
	ans.On("Answer", mock.Anything, "Any goals?").Return("not yet", nil)

	tr, err := New(mc, testFields, Options{MaxRounds: 1}).Session(context.Background(), "n", "all", ans)
	require.NoError(t, err)
	assert.False(t, tr.Complete)
	assert.Len(t, tr.Rounds, 1)
	assert.Equal(t, "n\nnot yet", tr.Note)
	mc.AssertNumberOfCalls(t, "Complete", 2)
	ans.AssertNumberOfCalls(t, "Answer", 1)
}

func TestSession_EOFEndsEarly(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "Any goals?"}, nil)

	ans := new(mockAnswerer)
	ans.On("Answer", mock.Anything, mock.Anything).Return("", io.EOF)

	tr, err := New(mc, testFields, Options{MaxRounds: 3}).Session(context.Background(), "n", "all", ans)
	require.NoError(t, err)
	assert.Empty(t, tr.Rounds)
	assert.Equal(t, "n", tr.Note)
	assert.Equal(t, "Any goals?", tr.Last)
}

func TestSession_AnswerError(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "Any goals?"}, nil)

	ans := new(mockAnswerer)
	ans.On("Answer", mock.Anything, mock.Anything).Return("", errors.New("tty gone"))

	_, err := New(mc, testFields, Options{}).Session(context.Background(), "n", "all", ans)
	assert.ErrorContains(t, err, "docassist: read answer")
}

func TestReview_PhaseAllSendsOnlySharedFields(t *testing.T) {
	mc := new(mockCompleter)
	mc.On("Complete", mock.Anything, mock.MatchedBy(func(p llm.Prompt) bool {
		body := p.Messages[0].Content
		return strings.Contains(body, "housing_status") &&
			!strings.Contains(body, "goals") &&
			!strings.Contains(body, "med_changes")
	})).Return(&llm.Completion{Text: CompletionMarker}, nil)

	rev, err := New(mc, testFields, Options{}).Review(context.Background(), "Living with sister.", model.PhaseAll)
	require.NoError(t, err)
	assert.True(t, rev.Complete)
	mc.AssertExpectations(t)
}
