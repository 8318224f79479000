package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/panel-triage/internal/config"
	"github.com/sells-group/panel-triage/internal/model"
)

var (
	classifyOffline  bool
	classifyExamples string
)

var classifyCmd = &cobra.Command{
	Use:   "classify <task description>",
	Short: "Classify a single task description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if classifyOffline {
			cfg.Classifier.Provider = config.ProviderKeyword
		}
		if cmd.Flags().Changed("examples") {
			cfg.Inputs.Examples = classifyExamples
		}
		if err := cfg.Validate("classify"); err != nil {
			return err
		}

		examples, err := loadExamples(ctx)
		if err != nil {
			return err
		}
		classifier, _, err := initClassifier(examples)
		if err != nil {
			return err
		}

		category, err := classifier.Classify(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "classify")
		}
		if category == "" {
			category = "(none)"
		}

		fmt.Fprintln(cmd.OutOrStdout(), category)
		if category != "(none)" && !model.IsKnownCategory(category) {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: response is not one of the known categories")
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyOffline, "offline", false, "use the keyword classifier (no API calls)")
	classifyCmd.Flags().StringVar(&classifyExamples, "examples", "", "labeled classifier examples")
	rootCmd.AddCommand(classifyCmd)
}
