package model

// Flag marks a result row that did not complete normally.
type Flag string

// Result row flags.
const (
	FlagNone             Flag = ""
	FlagUnclassified     Flag = "unclassified"
	FlagPatientNotFound  Flag = "patient_not_found"
	FlagPatientAmbiguous Flag = "patient_ambiguous"
)

// ScoredTask is the outcome of evaluating one task against the active rule
// set. Rows flagged with a patient failure carry no score or rank.
type ScoredTask struct {
	Task     Task     `json:"task"`
	Category string   `json:"predicted_category"`
	Score    float64  `json:"priority_score"`
	Rank     int      `json:"priority_rank,omitempty"`
	Label    string   `json:"priority_label,omitempty"`
	Reasons  []string `json:"reasons"`
	Flag     Flag     `json:"flag,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Scored reports whether the row went through rule scoring.
func (s ScoredTask) Scored() bool {
	return s.Rank > 0
}
