package model

import "strings"

// PhaseAll marks a structured field that applies to every engagement phase.
const PhaseAll = "all"

// StructuredField is a documentation field a care-management note must cover.
type StructuredField struct {
	Name         string   `json:"field_name"`
	Instructions string   `json:"instructions"`
	Phases       []string `json:"phase"`
}

// AppliesTo reports whether the field is required in phase. A field listing
// "all" applies in every phase, so asking for "all" selects only those.
func (f StructuredField) AppliesTo(phase string) bool {
	phase = strings.TrimSpace(phase)
	for _, p := range f.Phases {
		if p == phase || p == PhaseAll {
			return true
		}
	}
	return false
}

// FieldsForPhase filters fields to those that apply to phase, keeping order.
func FieldsForPhase(fields []StructuredField, phase string) []StructuredField {
	var out []StructuredField
	for _, f := range fields {
		if f.AppliesTo(phase) {
			out = append(out, f)
		}
	}
	return out
}
