package registry

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/panel-triage/internal/fetcher"
	"github.com/sells-group/panel-triage/internal/model"
)

// Classifier example columns.
const (
	ColExampleTask     = "Task"
	ColExampleCategory = "risk_factor_stage"
)

// LoadExamples reads the labeled few-shot examples at path. Rows missing a
// task or a category are dropped.
func LoadExamples(ctx context.Context, path string) ([]model.Example, error) {
	tbl, err := fetcher.ReadTable(ctx, path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: load examples")
	}
	if err := requireColumns(tbl, ColExampleTask, ColExampleCategory); err != nil {
		return nil, err
	}

	examples := make([]model.Example, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		ex := model.Example{
			Task:     tbl.Get(row, ColExampleTask),
			Category: tbl.Get(row, ColExampleCategory),
		}
		if ex.Task == "" || ex.Category == "" {
			continue
		}
		examples = append(examples, ex)
	}
	return examples, nil
}
