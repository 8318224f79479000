package pipeline

import (
	"fmt"

	"github.com/sells-group/panel-triage/internal/model"
)

// PatientNotFoundError means a task's patient_id did not resolve to exactly
// one patient. Matches is 0 for a missing patient and >1 for duplicates.
type PatientNotFoundError struct {
	PatientID string
	Matches   int
}

func (e *PatientNotFoundError) Error() string {
	if e.Ambiguous() {
		return fmt.Sprintf("pipeline: patient %q matched %d rows", e.PatientID, e.Matches)
	}
	return fmt.Sprintf("pipeline: patient %q not found", e.PatientID)
}

// Ambiguous reports whether the ID matched more than one patient.
func (e *PatientNotFoundError) Ambiguous() bool {
	return e.Matches > 1
}

// ResolvePatient returns the single patient whose ID equals id exactly.
func ResolvePatient(panel *model.Panel, id string) (model.Patient, error) {
	matches := panel.Lookup(id)
	if len(matches) != 1 {
		return model.Patient{}, &PatientNotFoundError{PatientID: id, Matches: len(matches)}
	}
	return matches[0], nil
}
