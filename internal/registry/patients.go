package registry

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/panel-triage/internal/fetcher"
	"github.com/sells-group/panel-triage/internal/model"
)

// LoadPatients reads the patient panel at path.
func LoadPatients(ctx context.Context, path string) (*model.Panel, error) {
	tbl, err := fetcher.ReadTable(ctx, path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: load patients")
	}
	return ParsePatients(tbl)
}

// ParsePatients converts a patient table into a Panel. Every cell is kept as
// a tagged value; empty cells are absent attributes.
func ParsePatients(tbl *fetcher.Table) (*model.Panel, error) {
	if err := requireColumns(tbl, model.ColPatientID); err != nil {
		return nil, err
	}

	patients := make([]model.Patient, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		p := model.Patient{
			ID:    tbl.Get(row, model.ColPatientID),
			Name:  tbl.Get(row, model.ColPatientName),
			Attrs: make(map[string]model.Value, len(tbl.Header)),
		}
		for _, col := range tbl.Header {
			if col == "" {
				continue
			}
			if v := model.ParseValue(tbl.Get(row, col)); !v.IsNull() {
				p.Attrs[col] = v
			}
		}
		patients = append(patients, p)
	}

	return model.NewPanel(tbl.Header, patients), nil
}
