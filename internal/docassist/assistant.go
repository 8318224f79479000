// Package docassist reviews free-text visit notes against the structured
// fields required for a patient's phase and asks follow-up questions until
// the note covers them or the round limit is reached.
package docassist

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/llm"
	"github.com/sells-group/panel-triage/internal/model"
)

// DefaultMaxRounds bounds follow-up rounds when Options leaves it unset.
const DefaultMaxRounds = 1

// Answerer supplies the clinician's reply to a follow-up. Returning io.EOF
// ends the session early without error.
type Answerer interface {
	Answer(ctx context.Context, followup string) (string, error)
}

// Options configures an Assistant.
type Options struct {
	MaxRounds int
	MaxTokens int
}

// Assistant checks visit notes with a language model.
type Assistant struct {
	completer llm.Completer
	fields    []model.StructuredField
	maxRounds int
	maxTokens int
}

// New creates an Assistant over the full structured field table.
func New(c llm.Completer, fields []model.StructuredField, opts Options) *Assistant {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	return &Assistant{completer: c, fields: fields, maxRounds: opts.MaxRounds, maxTokens: opts.MaxTokens}
}

// Review is the model's verdict on one version of a note.
type Review struct {
	Reply    string `json:"reply"`
	Complete bool   `json:"complete"`
}

// Review checks note once against the fields relevant to phase. A phase
// with no relevant fields is complete without asking the model.
func (a *Assistant) Review(ctx context.Context, note, phase string) (*Review, error) {
	fields := model.FieldsForPhase(a.fields, phase)
	if len(fields) == 0 {
		zap.L().Info("docassist: no fields for phase", zap.String("phase", phase))
		return &Review{Reply: CompletionMarker, Complete: true}, nil
	}

	p := BuildPrompt(note, fields)
	p.MaxTokens = a.maxTokens

	out, err := a.completer.Complete(ctx, p)
	if err != nil {
		return nil, eris.Wrap(err, "docassist: review note")
	}
	reply := out.Trimmed()
	return &Review{Reply: reply, Complete: IsComplete(reply)}, nil
}

// Round is one follow-up and the answer given to it.
type Round struct {
	Followup string `json:"followup"`
	Answer   string `json:"answer"`
}

// Transcript is the outcome of a session.
type Transcript struct {
	Phase    string  `json:"phase"`
	Note     string  `json:"note"`
	Rounds   []Round `json:"rounds"`
	Complete bool    `json:"complete"`
	// Last is the final reply from the model.
	Last string `json:"last"`
}

// Session reviews note, asks the answerer each follow-up and appends the
// answers to the note, for at most the configured number of rounds. The
// note is reviewed once more after the last answer.
func (a *Assistant) Session(ctx context.Context, note, phase string, ans Answerer) (*Transcript, error) {
	t := &Transcript{Phase: phase, Note: note, Rounds: []Round{}}
	log := zap.L().With(zap.String("phase", phase))

	for round := 0; ; round++ {
		rev, err := a.Review(ctx, t.Note, phase)
		if err != nil {
			return t, err
		}
		t.Last = rev.Reply
		t.Complete = rev.Complete
		if rev.Complete || round >= a.maxRounds {
			log.Info("docassist: session finished", zap.Int("rounds", round), zap.Bool("complete", rev.Complete))
			return t, nil
		}

		answer, err := ans.Answer(ctx, rev.Reply)
		if errors.Is(err, io.EOF) {
			log.Info("docassist: session ended by user", zap.Int("rounds", round))
			return t, nil
		}
		if err != nil {
			return t, eris.Wrap(err, "docassist: read answer")
		}

		t.Rounds = append(t.Rounds, Round{Followup: rev.Reply, Answer: answer})
		if strings.TrimSpace(answer) != "" {
			t.Note += "\n" + answer
		}
	}
}
