// Package pipeline runs a batch of tasks through patient resolution,
// classification, rule scoring and ranking, and orders the results.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/panel-triage/internal/classify"
	"github.com/sells-group/panel-triage/internal/model"
	"github.com/sells-group/panel-triage/internal/scorer"
)

// DefaultConcurrency is used when New is given a non-positive limit.
const DefaultConcurrency = 4

// Batch is everything one run needs. The panel and rule set are read-only
// for the duration of the run.
type Batch struct {
	Tasks      []model.Task
	Panel      *model.Panel
	Rules      model.RuleSet
	Classifier classify.Classifier
}

// Result is the ordered outcome of a run.
type Result struct {
	RunID    string             `json:"run_id"`
	Rows     []model.ScoredTask `json:"rows"`
	Counts   []LabelCount       `json:"label_counts"`
	Duration time.Duration      `json:"duration_ns"`
}

// Pipeline scores tasks on a bounded worker pool.
type Pipeline struct {
	concurrency int
}

// New creates a Pipeline that processes at most concurrency tasks at once.
func New(concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Pipeline{concurrency: concurrency}
}

// Run processes every task in the batch and returns the rows sorted by
// priority. A failure on one task is recorded on its row and never aborts
// the batch; only a malformed batch or a cancelled context returns an error.
func (p *Pipeline) Run(ctx context.Context, b Batch) (*Result, error) {
	if b.Panel == nil {
		return nil, eris.New("pipeline: batch has no patient panel")
	}
	if b.Classifier == nil {
		return nil, eris.New("pipeline: batch has no classifier")
	}

	start := time.Now()
	runID := uuid.New().String()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("pipeline: starting run",
		zap.Int("tasks", len(b.Tasks)),
		zap.Int("rules", len(b.Rules.Rules)),
		zap.Int("patients", len(b.Panel.Patients)),
		zap.Int("concurrency", p.concurrency),
	)

	engine := scorer.NewEngine(b.Rules)
	rows := make([]model.ScoredTask, len(b.Tasks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, task := range b.Tasks {
		g.Go(func() error {
			rows[i] = processTask(gCtx, engine, b, task)
			return nil // per-task failures live on the row
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: run cancelled")
	}

	SortRows(rows)
	counts := CountLabels(rows)

	res := &Result{
		RunID:    runID,
		Rows:     rows,
		Counts:   counts,
		Duration: time.Since(start),
	}

	fields := []zap.Field{
		zap.Int("tasks", len(rows)),
		zap.Duration("duration", res.Duration),
	}
	for _, c := range counts {
		fields = append(fields, zap.Int(c.Label, c.Count))
	}
	log.Info("pipeline: run complete", fields...)

	return res, nil
}

// processTask produces exactly one row for task: scored, scored but
// unclassified, or flagged with a patient failure.
func processTask(ctx context.Context, engine *scorer.Engine, b Batch, task model.Task) model.ScoredTask {
	log := zap.L().With(zap.String("task_id", task.ID), zap.String("patient_id", task.PatientID))
	row := model.ScoredTask{Task: task, Reasons: []string{}}

	patient, err := ResolvePatient(b.Panel, task.PatientID)
	if err != nil {
		var pnf *PatientNotFoundError
		if errors.As(err, &pnf) && pnf.Ambiguous() {
			row.Flag = model.FlagPatientAmbiguous
		} else {
			row.Flag = model.FlagPatientNotFound
		}
		row.Error = err.Error()
		log.Warn("pipeline: task skipped", zap.Error(err))
		return row
	}

	category, err := b.Classifier.Classify(ctx, task.Text)
	if err != nil {
		row.Flag = model.FlagUnclassified
		row.Error = err.Error()
		category = ""
		log.Warn("pipeline: classification failed, scoring without category", zap.Error(err))
	}

	res := engine.Score(task, category, patient)
	row.Category = category
	row.Score = res.Score
	row.Rank = scorer.Classify(res.Score)
	row.Label = scorer.Label(row.Rank)
	row.Reasons = res.Reasons

	log.Debug("pipeline: task scored",
		zap.String("category", category),
		zap.Float64("score", row.Score),
		zap.Int("rank", row.Rank),
		zap.Strings("fired", res.Fired),
	)
	return row
}
