package scorer

import (
	"fmt"
	"strings"

	"github.com/sells-group/panel-triage/internal/model"
)

// Match is the outcome of evaluating one rule against one task.
type Match struct {
	RuleID  string
	Matched bool
	// Reasons holds one line per firing clause followed by the points line.
	// Empty when the rule did not match.
	Reasons []string
	// Err is set when the patient-field clause could not be evaluated. The
	// rule is then treated as not matching.
	Err error
}

// MatchRule decides whether rule fires for the given task text, predicted
// category, and patient. The category, keyword, and patient-field clauses are
// OR-combined; a condition clause, when present, vetoes the whole rule unless
// the patient's condition attribute equals the rule's condition value.
func MatchRule(rule model.Rule, taskText, category string, patient model.Patient) Match {
	m := Match{RuleID: rule.ID}
	var reasons []string

	if rule.TaskCategory != "" && category == rule.TaskCategory {
		reasons = append(reasons, "Matched Task Category: "+rule.TaskCategory)
	}

	if rule.Keyword != "" && strings.Contains(strings.ToLower(taskText), strings.ToLower(rule.Keyword)) {
		reasons = append(reasons, "Matched Keyword: "+rule.Keyword)
	}

	if rule.PatientField != "" {
		if value, ok := patient.Get(rule.PatientField); ok {
			fired, err := Evaluate(value, rule.Operator, rule.PatientValue)
			if err != nil {
				m.Err = err
				return m
			}
			if fired {
				reasons = append(reasons, fmt.Sprintf("Matched Patient Field: %s=%s", rule.PatientField, value.String()))
			}
		}
	}

	if len(reasons) == 0 {
		return m
	}

	if rule.HasCondition() {
		got, ok := patient.Get(rule.ConditionField)
		if !ok || !got.Equal(rule.ConditionValue) {
			return m
		}
	}

	m.Matched = true
	m.Reasons = append(reasons, PointsReason(rule))
	return m
}

// PointsReason renders the trailing explanation line for a matched rule. The
// "+" is literal, so a penalty reads "+-3 points".
func PointsReason(rule model.Rule) string {
	return fmt.Sprintf("+%s points from Rule %s", model.FormatNumber(rule.Points), rule.ID)
}
