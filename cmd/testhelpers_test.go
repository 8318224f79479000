package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr. Flags are reset first since cobra keeps
// their state between executions.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type fixtures struct {
	Dir, Patients, Rules, Tasks, Examples string
}

func writeFixtures(t *testing.T) fixtures {
	t.Helper()
	dir := t.TempDir()
	return fixtures{
		Dir: dir,
		Patients: writeFile(t, dir, "patients.csv", `patient_id,patient_name,age,risk_level
P1,Ada,70,high
P2,Ben,30,low
`),
		Rules: writeFile(t, dir, "rules.csv", `rule_id,task_category,keyword,patient_field,patient_field_operator,patient_field_value,points,condition_field,condition_value
R1,Clinical Stability,,,,,5,,
R2,,crisis,,,,3,,
R3,,,age,>,65,3,,
R4,Medication Adherence,,,,,4,,
`),
		Tasks: writeFile(t, dir, "tasks.csv", `patient_id,patient_name,TASK
P1,Ada,Build crisis safety plan
P2,Ben,Call pharmacy for refill
P3,Nobody,Orphan task
`),
		Examples: writeFile(t, dir, "examples.csv", `Task,risk_factor_stage
Help fill pill organizer,Medication Adherence
`),
	}
}
