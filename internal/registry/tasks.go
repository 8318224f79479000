package registry

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/fetcher"
	"github.com/sells-group/panel-triage/internal/model"
)

// Task list columns. The task text column is matched against TaskColumns in
// order.
const (
	ColTaskSource = "task_source"
)

// TaskColumns are the accepted names of the task text column.
var TaskColumns = []string{"TASK", "Task", "task"}

// LoadTasks reads a task list at path. Rows without a task_source column (or
// with an empty one) are tagged with source.
func LoadTasks(ctx context.Context, path string, source model.TaskSource) ([]model.Task, error) {
	tbl, err := fetcher.ReadTable(ctx, path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: load tasks")
	}
	return ParseTasks(tbl, source)
}

// ParseTasks converts a task table into tasks with stable IDs of the form
// "<source>-<row>".
func ParseTasks(tbl *fetcher.Table, source model.TaskSource) ([]model.Task, error) {
	textCol, ok := firstColumn(tbl, TaskColumns...)
	if !ok {
		return nil, &SchemaError{Table: tbl.Name, Missing: []string{TaskColumns[0]}}
	}
	if err := requireColumns(tbl, model.ColPatientID, model.ColPatientName); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		t := model.Task{
			ID:          fmt.Sprintf("%s-%d", source, i+1),
			PatientID:   tbl.Get(row, model.ColPatientID),
			PatientName: tbl.Get(row, model.ColPatientName),
			Text:        tbl.Get(row, textCol),
			Source:      source,
		}
		if s := tbl.Get(row, ColTaskSource); s != "" {
			t.Source = model.TaskSource(s)
		}
		if t.Text == "" {
			zap.L().Warn("registry: task row has empty text",
				zap.String("task_id", t.ID),
				zap.String("patient_id", t.PatientID),
			)
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// LoadTaskSources loads the freeform task list and, when eventPath is set,
// the event-triggered list, and concatenates them freeform first.
func LoadTaskSources(ctx context.Context, freeformPath, eventPath string) ([]model.Task, error) {
	tasks, err := LoadTasks(ctx, freeformPath, model.SourceFreeform)
	if err != nil {
		return nil, err
	}
	if eventPath == "" {
		return tasks, nil
	}

	events, err := LoadTasks(ctx, eventPath, model.SourceEvent)
	if err != nil {
		return nil, err
	}

	zap.L().Info("registry: loaded tasks",
		zap.Int("freeform", len(tasks)),
		zap.Int("event_triggered", len(events)),
	)
	return append(tasks, events...), nil
}
