package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/panel-triage/internal/model"
)

// Issue is a problem found in a rule set. Issues never stop a run; the
// engine treats the affected clauses as non-matching.
type Issue struct {
	RuleID  string `json:"rule_id"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("rule %s: %s", i.RuleID, i.Message)
}

// ValidateRules checks a rule set for mistakes an editor is likely to make.
// panel may be nil, in which case patient columns are not checked.
func ValidateRules(rs model.RuleSet, panel *model.Panel) []Issue {
	var issues []Issue
	add := func(id, format string, args ...any) {
		issues = append(issues, Issue{RuleID: id, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(rs.Rules))
	for _, r := range rs.Rules {
		if seen[r.ID] {
			add(r.ID, "duplicate rule_id")
		}
		seen[r.ID] = true

		if r.TaskCategory == "" && r.Keyword == "" && r.PatientField == "" {
			add(r.ID, "no task_category, keyword, or patient_field; rule can never match")
		}
		if r.TaskCategory != "" && !model.IsKnownCategory(r.TaskCategory) {
			add(r.ID, "task_category %q is not one of: %s", r.TaskCategory, strings.Join(model.Categories, ", "))
		}

		if r.PatientField != "" {
			if !r.Operator.Known() {
				add(r.ID, "operator %q is not supported; clause will never match", r.Operator)
			}
			if r.Operator == model.OpIn && r.PatientValue.Kind != model.KindList {
				if _, err := model.ParseList(r.PatientValue.Raw); err != nil {
					add(r.ID, "patient_field_value %q is not a list literal", r.PatientValue.Raw)
				}
			}
			if isOrdering(r.Operator) {
				if _, ok := r.PatientValue.Float(); !ok {
					add(r.ID, "patient_field_value %q is not numeric for operator %s", r.PatientValue.String(), r.Operator)
				}
			}
			if panel != nil && !panel.HasColumn(r.PatientField) {
				add(r.ID, "patient_field %q is not a column of the patient panel", r.PatientField)
			}
		}

		if r.ConditionField != "" && r.ConditionValue.IsNull() {
			add(r.ID, "condition_field %q has no condition_value; rule will never match", r.ConditionField)
		}
		if r.ConditionField == "" && !r.ConditionValue.IsNull() {
			add(r.ID, "condition_value without condition_field is ignored")
		}
		if panel != nil && r.ConditionField != "" && !panel.HasColumn(r.ConditionField) {
			add(r.ID, "condition_field %q is not a column of the patient panel", r.ConditionField)
		}
	}

	return issues
}

// IssuesError folds issues into a single error, or returns nil.
func IssuesError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, is := range issues {
		msgs[i] = is.String()
	}
	return eris.Errorf("scorer: rule validation failed: %s", strings.Join(msgs, "; "))
}

func isOrdering(op model.Operator) bool {
	switch op {
	case model.OpLess, model.OpGreater, model.OpLessEqual, model.OpGreaterEqual:
		return true
	}
	return false
}
