package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/panel-triage/internal/scorer"
)

func TestRulesGuide(t *testing.T) {
	fx := writeFixtures(t)

	out, err := executeCommand(t, "", "rules", "guide", "--patients", fx.Patients)
	require.NoError(t, err)
	assert.Contains(t, out, "Clinical Stability")
	assert.Contains(t, out, "list membership")
	assert.Contains(t, out, "70, 30")
	assert.Contains(t, out, "high, low")
	assert.NotContains(t, out, "Ada")
}

func TestRulesGuide_JSON(t *testing.T) {
	fx := writeFixtures(t)

	out, err := executeCommand(t, "", "rules", "guide", "--patients", fx.Patients, "--json", "--samples", "1")
	require.NoError(t, err)

	var g scorer.Guide
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	require.Len(t, g.Fields, 2)
	assert.Equal(t, []string{"70"}, g.Fields[0].Samples)
}

func TestRulesValidate_OK(t *testing.T) {
	fx := writeFixtures(t)

	out, err := executeCommand(t, "", "rules", "validate", "--rules", fx.Rules, "--patients", fx.Patients)
	require.NoError(t, err)
	assert.Contains(t, out, "4 rules OK")
}

func TestRulesValidate_Problems(t *testing.T) {
	fx := writeFixtures(t)
	rules := writeFile(t, fx.Dir, "bad.csv", `rule_id,task_category,keyword,patient_field,patient_field_operator,patient_field_value,points
R1,Clinical Stability,,,,,lots
R2,,,zip_code,==,10001,2
`)

	out, err := executeCommand(t, "", "rules", "validate", "--rules", rules, "--patients", fx.Patients)
	require.Error(t, err)
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, `patient_field "zip_code" is not a column`)
	assert.Contains(t, out, "1 rules loaded, 1 rows rejected, 1 issues")
}
