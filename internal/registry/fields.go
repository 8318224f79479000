package registry

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/panel-triage/internal/fetcher"
	"github.com/sells-group/panel-triage/internal/model"
)

// Structured field table columns.
const (
	ColFieldName    = "field_name"
	ColInstructions = "instructions"
	ColPhase        = "phase"
)

// LoadStructuredFields reads the documentation field table at path. The phase
// column is a pipe-separated list; an empty phase means "all".
func LoadStructuredFields(ctx context.Context, path string) ([]model.StructuredField, error) {
	tbl, err := fetcher.ReadTable(ctx, path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: load structured fields")
	}
	if err := requireColumns(tbl, ColFieldName, ColInstructions, ColPhase); err != nil {
		return nil, err
	}

	fields := make([]model.StructuredField, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		f := model.StructuredField{
			Name:         tbl.Get(row, ColFieldName),
			Instructions: tbl.Get(row, ColInstructions),
			Phases:       splitPhases(tbl.Get(row, ColPhase)),
		}
		if f.Name == "" {
			continue
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func splitPhases(s string) []string {
	var phases []string
	for _, p := range strings.Split(s, "|") {
		if p = strings.TrimSpace(p); p != "" {
			phases = append(phases, p)
		}
	}
	if len(phases) == 0 {
		return []string{model.PhaseAll}
	}
	return phases
}
