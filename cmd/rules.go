package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/model"
	"github.com/sells-group/panel-triage/internal/registry"
	"github.com/sells-group/panel-triage/internal/scorer"
)

var (
	rulesPatients string
	rulesFile     string
	rulesSamples  int
	rulesJSON     bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and check the priority rule table",
}

var rulesGuideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Print the categories, operators and patient fields available to rules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		applyRulesFlags(cmd)

		var panel *model.Panel
		if cfg.Inputs.Patients != "" {
			p, err := registry.LoadPatients(ctx, cfg.Inputs.Patients)
			if err != nil {
				return eris.Wrap(err, "load patients")
			}
			panel = p
		}

		g := scorer.NewGuide(panel, rulesSamples)
		out := cmd.OutOrStdout()
		if rulesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(g)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TASK CATEGORIES (task_category)")
		for _, c := range g.Categories {
			fmt.Fprintf(tw, "  %s\n", c)
		}
		fmt.Fprintln(tw, "\nOPERATORS (patient_field_operator)")
		for _, op := range g.Operators {
			fmt.Fprintf(tw, "  %s\t%s\n", op.Operator, op.Description)
		}
		fmt.Fprintln(tw, "\nPATIENT FIELDS (patient_field, condition_field)")
		for _, f := range g.Fields {
			fmt.Fprintf(tw, "  %s\t%s\n", f.Field, strings.Join(f.Samples, ", "))
		}
		return tw.Flush()
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the rule table for unusable rows and likely mistakes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		applyRulesFlags(cmd)
		if err := cfg.Validate("rules"); err != nil {
			return err
		}

		rules, rejected, err := registry.LoadRules(ctx, cfg.Inputs.Rules)
		if err != nil {
			return eris.Wrap(err, "load rules")
		}

		var panel *model.Panel
		if cfg.Inputs.Patients != "" {
			panel, err = registry.LoadPatients(ctx, cfg.Inputs.Patients)
			if err != nil {
				zap.L().Warn("patients not loaded, skipping column checks", zap.Error(err))
				panel = nil
			}
		}

		issues := scorer.ValidateRules(rules, panel)
		out := cmd.OutOrStdout()
		for _, r := range rejected {
			fmt.Fprintf(out, "row %d (%s): rejected: %s\n", r.Row, r.ID, r.Reason)
		}
		for _, is := range issues {
			fmt.Fprintln(out, is.String())
		}

		if len(rejected) == 0 && len(issues) == 0 {
			fmt.Fprintf(out, "%d rules OK\n", rules.Len())
			return nil
		}
		fmt.Fprintf(out, "%d rules loaded, %d rows rejected, %d issues\n", rules.Len(), len(rejected), len(issues))
		if len(rejected) > 0 {
			return eris.Errorf("rules: %d rows rejected", len(rejected))
		}
		return scorer.IssuesError(issues)
	},
}

func applyRulesFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("patients") {
		cfg.Inputs.Patients = rulesPatients
	}
	if cmd.Flags().Changed("rules") {
		cfg.Inputs.Rules = rulesFile
	}
}

func init() {
	rulesCmd.PersistentFlags().StringVar(&rulesPatients, "patients", "", "patient panel table")
	rulesCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "priority rule table")
	rulesGuideCmd.Flags().IntVar(&rulesSamples, "samples", scorer.DefaultGuideSamples, "sample values shown per patient field")
	rulesGuideCmd.Flags().BoolVar(&rulesJSON, "json", false, "print the guide as JSON")
	rulesCmd.AddCommand(rulesGuideCmd, rulesValidateCmd)
	rootCmd.AddCommand(rulesCmd)
}
