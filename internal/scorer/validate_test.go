package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/panel-triage/internal/model"
)

func TestValidateRules(t *testing.T) {
	t.Parallel()

	panel := model.NewPanel([]string{"patient_id", "patient_name", "risk_level", "age"}, nil)
	rules := model.RuleSet{Rules: []model.Rule{
		{ID: "ok", TaskCategory: "Clinical Stability", Points: 1},
		{ID: "ok", Keyword: "dup", Points: 1},
		{ID: "empty", Points: 1},
		{ID: "cat", TaskCategory: "clinical", Points: 1},
		{ID: "op", PatientField: "age", Operator: "=>", PatientValue: model.ParseValue("3")},
		{ID: "list", PatientField: "risk_level", Operator: model.OpIn, PatientValue: model.ParseValue("[a,b")},
		{ID: "num", PatientField: "age", Operator: model.OpLess, PatientValue: model.ParseValue("old")},
		{ID: "col", PatientField: "zip", Operator: model.OpEqual, PatientValue: model.ParseValue("1")},
		{ID: "gate", Keyword: "x", ConditionField: "risk_level"},
	}}

	issues := ValidateRules(rules, panel)
	byRule := map[string]int{}
	for _, is := range issues {
		byRule[is.RuleID]++
	}

	assert.Equal(t, 1, byRule["ok"])
	assert.Equal(t, 1, byRule["empty"])
	assert.Equal(t, 1, byRule["cat"])
	assert.Equal(t, 1, byRule["op"])
	assert.Equal(t, 1, byRule["list"])
	assert.Equal(t, 1, byRule["num"])
	assert.Equal(t, 1, byRule["col"])
	assert.Equal(t, 1, byRule["gate"])

	err := IssuesError(issues)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule gate")
}

func TestValidateRules_Clean(t *testing.T) {
	t.Parallel()

	rules := model.RuleSet{Rules: []model.Rule{
		{ID: "1", Keyword: "safety plan", TaskCategory: "Clinical Stability", Points: 6},
		{ID: "2", PatientField: "risk_level", Operator: model.OpIn, PatientValue: model.ParseValue("['high','medium']"), Points: 2},
	}}

	assert.Empty(t, ValidateRules(rules, nil))
	assert.NoError(t, IssuesError(nil))
}
