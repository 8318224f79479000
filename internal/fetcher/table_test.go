package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.csv")
	require.NoError(t, os.WriteFile(path, []byte(" patient_id ,patient_name,risk_level\nP1,Tony J., high\n,,\nP2,Maria L.,low\n"), 0o644))

	tbl, err := ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "patients.csv", tbl.Name)
	assert.Equal(t, []string{"patient_id", "patient_name", "risk_level"}, tbl.Header)
	require.Len(t, tbl.Rows, 2, "blank rows are dropped")
	assert.Equal(t, "high", tbl.Get(tbl.Rows[0], "risk_level"))
	assert.Equal(t, "", tbl.Get(tbl.Rows[0], "missing"))
	assert.Equal(t, map[string]string{"patient_id": "P2", "patient_name": "Maria L.", "risk_level": "low"}, tbl.Record(tbl.Rows[1]))
}

func TestReadTable_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.tsv")
	require.NoError(t, os.WriteFile(path, []byte("patient_id\tTASK\nP1\tCall pharmacy, confirm refill\n"), 0o644))

	tbl, err := ReadTable(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Call pharmacy, confirm refill", tbl.Get(tbl.Rows[0], "TASK"))
}

func TestReadTable_XLSX(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"rule_id", "points"}, {"1", "5"}},
	})

	tbl, err := ReadTable(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "5", tbl.Get(tbl.Rows[0], "points"))
}

func TestReadTable_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadTable(context.Background(), filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadTable(context.Background(), empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestTableMissing(t *testing.T) {
	tbl := NewTable("rules", []string{"rule_id", "points", "rule_id"}, nil)
	assert.True(t, tbl.Has("points"))
	assert.Equal(t, []string{"keyword", "task_category"}, tbl.Missing("rule_id", "keyword", "task_category"))
	assert.Nil(t, tbl.Missing("rule_id"))
}
