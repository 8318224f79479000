package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/config"
	"github.com/sells-group/panel-triage/internal/pipeline"
	"github.com/sells-group/panel-triage/internal/registry"
	"github.com/sells-group/panel-triage/internal/scorer"
)

var (
	prioritizePatients    string
	prioritizeRules       string
	prioritizeTasks       string
	prioritizeEventTasks  string
	prioritizeExamples    string
	prioritizeOutput      string
	prioritizeFormat      string
	prioritizeConcurrency int
	prioritizeProvider    string
	prioritizeOffline     bool
)

var prioritizeCmd = &cobra.Command{
	Use:   "prioritize",
	Short: "Classify, score and rank every task in the task lists",
	Long: `Loads the patient panel, rule table and task lists, classifies each task,
scores it against the rules and writes the ranked report.

Supports two modes:
  - Language model (default): classifier.provider ollama or anthropic
  - Offline (--offline): keyword classifier, no network access

Examples:
  # Offline run with the default data/ inputs
  panel-triage prioritize --offline

  # Claude classifier, XLSX report with Critical/High highlighted
  TRIAGE_ANTHROPIC_KEY=... panel-triage prioritize --provider anthropic --format xlsx

  # Print the ranked table to the terminal
  panel-triage prioritize --offline --format table`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		applyPrioritizeFlags(cmd)

		if err := cfg.Validate("prioritize"); err != nil {
			return err
		}

		// Load inputs.
		panel, err := registry.LoadPatients(ctx, cfg.Inputs.Patients)
		if err != nil {
			return eris.Wrap(err, "load patients")
		}
		rules, rejected, err := registry.LoadRules(ctx, cfg.Inputs.Rules)
		if err != nil {
			return eris.Wrap(err, "load rules")
		}
		for _, issue := range scorer.ValidateRules(rules, panel) {
			zap.L().Warn("rule issue", zap.String("rule_id", issue.RuleID), zap.String("issue", issue.Message))
		}
		tasks, err := registry.LoadTaskSources(ctx, cfg.Inputs.Tasks, cfg.Inputs.EventTasks)
		if err != nil {
			return eris.Wrap(err, "load tasks")
		}
		examples, err := loadExamples(ctx)
		if err != nil {
			return err
		}

		zap.L().Info("inputs loaded",
			zap.Int("patients", len(panel.Patients)),
			zap.Int("rules", rules.Len()),
			zap.Int("rejected_rules", len(rejected)),
			zap.Int("tasks", len(tasks)),
			zap.Int("examples", len(examples)),
		)

		classifier, usage, err := initClassifier(examples)
		if err != nil {
			return err
		}

		res, err := pipeline.New(cfg.Batch.Concurrency).Run(ctx, pipeline.Batch{
			Tasks:      tasks,
			Panel:      panel,
			Rules:      rules,
			Classifier: classifier,
		})
		if err != nil {
			return eris.Wrap(err, "prioritize")
		}

		out := cmd.OutOrStdout()
		if err := pipeline.Export(res, cfg.Output.Format, cfg.Output.Path, out); err != nil {
			return err
		}

		summary := out
		if writesToStdout(cfg.Output.Format, cfg.Output.Path) {
			summary = cmd.ErrOrStderr()
		}
		printUsage(summary, usage)
		return printRunSummary(summary, res)
	},
}

// applyPrioritizeFlags copies explicitly set flags over the loaded config.
func applyPrioritizeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	set := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	set("patients", &cfg.Inputs.Patients, prioritizePatients)
	set("rules", &cfg.Inputs.Rules, prioritizeRules)
	set("tasks", &cfg.Inputs.Tasks, prioritizeTasks)
	set("event-tasks", &cfg.Inputs.EventTasks, prioritizeEventTasks)
	set("examples", &cfg.Inputs.Examples, prioritizeExamples)
	set("output", &cfg.Output.Path, prioritizeOutput)
	set("format", &cfg.Output.Format, prioritizeFormat)
	set("provider", &cfg.Classifier.Provider, prioritizeProvider)
	if flags.Changed("concurrency") {
		cfg.Batch.Concurrency = prioritizeConcurrency
	}
	if prioritizeOffline {
		cfg.Classifier.Provider = config.ProviderKeyword
	}

	// A format given without a path keeps the default name with a matching
	// extension.
	if flags.Changed("format") && !flags.Changed("output") {
		switch cfg.Output.Format {
		case pipeline.FormatCSV, pipeline.FormatXLSX, pipeline.FormatJSON:
			base := strings.TrimSuffix(cfg.Output.Path, filepath.Ext(cfg.Output.Path))
			cfg.Output.Path = base + "." + cfg.Output.Format
		}
	}
}

func writesToStdout(format, path string) bool {
	return format == pipeline.FormatTable || (format == pipeline.FormatJSON && (path == "" || path == "-"))
}

func printRunSummary(w io.Writer, res *pipeline.Result) error {
	if !writesToStdout(cfg.Output.Format, cfg.Output.Path) {
		fmt.Fprintf(w, "Saved %d prioritized tasks to %s\n\n", len(res.Rows), cfg.Output.Path)
	}
	return pipeline.WriteCounts(w, res.Counts)
}

func init() {
	f := prioritizeCmd.Flags()
	f.StringVar(&prioritizePatients, "patients", "", "patient panel table (csv, tsv or xlsx)")
	f.StringVar(&prioritizeRules, "rules", "", "priority rule table")
	f.StringVar(&prioritizeTasks, "tasks", "", "freeform task list")
	f.StringVar(&prioritizeEventTasks, "event-tasks", "", "event-triggered task list (optional)")
	f.StringVar(&prioritizeExamples, "examples", "", "labeled classifier examples")
	f.StringVarP(&prioritizeOutput, "output", "o", "", "output path")
	f.StringVar(&prioritizeFormat, "format", "", "output format: csv, xlsx, json, table")
	f.IntVar(&prioritizeConcurrency, "concurrency", 4, "number of tasks processed concurrently")
	f.StringVar(&prioritizeProvider, "provider", "", "classifier provider: ollama, anthropic, keyword")
	f.BoolVar(&prioritizeOffline, "offline", false, "use the keyword classifier (no API calls)")
	rootCmd.AddCommand(prioritizeCmd)
}
