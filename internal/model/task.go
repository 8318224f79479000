package model

// TaskSource distinguishes where a task came from.
type TaskSource string

// Task sources.
const (
	SourceFreeform TaskSource = "patient_freeform"
	SourceEvent    TaskSource = "event_triggered"
)

// Task is one unit of work to classify and prioritize.
type Task struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	Text        string     `json:"text"`
	Source      TaskSource `json:"source"`
}

// Example is a labeled task used as a few-shot example for classification.
type Example struct {
	Task     string `json:"task"`
	Category string `json:"category"`
}

// Task categories returned by the classifier.
const (
	CategoryIndividualAgency    = "Individual Agency"
	CategorySocialStability     = "Social Stability"
	CategoryClinicalStability   = "Clinical Stability"
	CategoryExternalClinicians  = "External Clinicians"
	CategoryMedicationAdherence = "Medication Adherence"
)

// Categories is the closed set of task categories in display order.
var Categories = []string{
	CategoryIndividualAgency,
	CategorySocialStability,
	CategoryClinicalStability,
	CategoryExternalClinicians,
	CategoryMedicationAdherence,
}

// IsKnownCategory reports whether c is exactly one of Categories.
func IsKnownCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}
