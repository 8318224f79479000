package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrioritize_OfflineCSV(t *testing.T) {
	fx := writeFixtures(t)
	outPath := filepath.Join(fx.Dir, "ranked.csv")

	out, err := executeCommand(t, "", "prioritize", "--offline",
		"--patients", fx.Patients, "--rules", fx.Rules, "--tasks", fx.Tasks,
		"--examples", fx.Examples, "--output", outPath, "--concurrency", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Saved 3 prioritized tasks to "+outPath)
	assert.Contains(t, out, "PRIORITY LABEL")

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Patient ID", records[0][0])
	assert.Equal(t, []string{"P1", "Ada", "Build crisis safety plan", "patient_freeform", "Clinical Stability", "1", "Critical", "11"}, records[1][:8])
	assert.Equal(t, "P2", records[2][0])
	assert.Equal(t, "Medium", records[2][6])
	assert.Equal(t, "P3", records[3][0])
	assert.Equal(t, "patient_not_found", records[3][9])
}

func TestPrioritize_FormatSetsExtension(t *testing.T) {
	fx := writeFixtures(t)
	t.Chdir(fx.Dir)

	_, err := executeCommand(t, "", "prioritize", "--offline",
		"--patients", fx.Patients, "--rules", fx.Rules, "--tasks", fx.Tasks,
		"--examples", fx.Examples, "--format", "xlsx")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(fx.Dir, "categorized_tasks_with_ranking.xlsx"))
}

func TestPrioritize_Table(t *testing.T) {
	fx := writeFixtures(t)

	out, err := executeCommand(t, "", "prioritize", "--offline",
		"--patients", fx.Patients, "--rules", fx.Rules, "--tasks", fx.Tasks,
		"--examples", fx.Examples, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Build crisis safety plan")
	assert.NotContains(t, out, "Saved")
}

func TestPrioritize_SchemaError(t *testing.T) {
	fx := writeFixtures(t)
	bad := writeFile(t, fx.Dir, "bad_rules.csv", "rule_id,points\nR1,5\n")

	_, err := executeCommand(t, "", "prioritize", "--offline",
		"--patients", fx.Patients, "--rules", bad, "--tasks", fx.Tasks,
		"--examples", fx.Examples, "--output", filepath.Join(fx.Dir, "x.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestPrioritize_InvalidConfig(t *testing.T) {
	_, err := executeCommand(t, "", "prioritize", "--offline", "--concurrency", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency")
}

func TestClassify_Offline(t *testing.T) {
	fx := writeFixtures(t)

	out, err := executeCommand(t, "", "classify", "--offline", "--examples", fx.Examples, "Call pharmacy about refill")
	require.NoError(t, err)
	assert.Contains(t, out, "Medication Adherence")

	out, err = executeCommand(t, "", "classify", "--offline", "--examples", fx.Examples, "zzz qqq")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}
