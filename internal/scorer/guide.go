package scorer

import (
	"strings"

	"github.com/sells-group/panel-triage/internal/model"
)

// DefaultGuideSamples is how many example values the guide lists per field.
const DefaultGuideSamples = 5

// OperatorHelp describes one supported operator.
type OperatorHelp struct {
	Operator    model.Operator `json:"operator"`
	Description string         `json:"description"`
}

// FieldSamples lists distinct example values of a patient column.
type FieldSamples struct {
	Field   string   `json:"field"`
	Samples []string `json:"samples"`
}

// Guide is the reference shown to people editing the rule table.
type Guide struct {
	Categories []string       `json:"categories"`
	Operators  []OperatorHelp `json:"operators"`
	Fields     []FieldSamples `json:"fields"`
}

// NewGuide builds the rules reference from the patient panel. Identity
// columns are left out. panel may be nil.
func NewGuide(panel *model.Panel, maxSamples int) Guide {
	if maxSamples <= 0 {
		maxSamples = DefaultGuideSamples
	}
	g := Guide{Categories: model.Categories}
	for _, op := range model.Operators {
		g.Operators = append(g.Operators, OperatorHelp{Operator: op, Description: op.Description()})
	}
	if panel == nil {
		return g
	}

	for _, col := range panel.Columns {
		if col == model.ColPatientID || col == model.ColPatientName {
			continue
		}
		fs := FieldSamples{Field: col, Samples: []string{}}
		seen := make(map[string]bool)
		for _, p := range panel.Patients {
			v, ok := p.Get(col)
			if !ok {
				continue
			}
			s := strings.TrimSpace(v.Raw)
			if seen[s] {
				continue
			}
			seen[s] = true
			fs.Samples = append(fs.Samples, s)
			if len(fs.Samples) == maxSamples {
				break
			}
		}
		g.Fields = append(g.Fields, fs)
	}
	return g
}
