package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/panel-triage/internal/docassist"
	"github.com/sells-group/panel-triage/internal/llm"
	"github.com/sells-group/panel-triage/internal/registry"
)

var (
	documentPhase     string
	documentNoteFile  string
	documentFields    string
	documentMaxRounds int
	documentJSON      bool
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Review a visit note against the structured fields for a phase",
	Long: `Checks a visit note for the structured fields required in the patient's
phase and asks follow-up questions. Answers are appended to the note.

Examples:
  # Interactive: type the note, then answer follow-ups
  panel-triage document --phase newly_engaged

  # Review a note from a file, two follow-up rounds
  panel-triage document --note-file visit.txt --max-rounds 2`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()
		if flags.Changed("phase") {
			cfg.DocAssist.Phase = documentPhase
		}
		if flags.Changed("max-rounds") {
			cfg.DocAssist.MaxRounds = documentMaxRounds
		}
		if flags.Changed("fields") {
			cfg.Inputs.StructuredFields = documentFields
		}
		if err := cfg.Validate("document"); err != nil {
			return err
		}

		fields, err := registry.LoadStructuredFields(ctx, cfg.Inputs.StructuredFields)
		if err != nil {
			return eris.Wrap(err, "load structured fields")
		}
		completer, err := llm.New(cfg)
		if err != nil {
			return eris.Wrap(err, "init assistant")
		}

		out := cmd.OutOrStdout()
		answerer := docassist.NewLineAnswerer(cmd.InOrStdin(), out)
		fmt.Fprintf(out, "Current phase: %s\n", docassist.PhaseDisplayName(cfg.DocAssist.Phase))

		note, err := readNote(documentNoteFile, answerer, cmd)
		if err != nil {
			return err
		}
		if strings.TrimSpace(note) == "" {
			return eris.New("document: visit note is empty")
		}

		a := docassist.New(completer, fields, docassist.Options{MaxRounds: cfg.DocAssist.MaxRounds})
		tr, err := a.Session(ctx, note, cfg.DocAssist.Phase, answerer)
		if err != nil {
			return err
		}

		if documentJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(tr)
		}
		if tr.Complete {
			fmt.Fprintf(out, "\n%s\n", tr.Last)
		} else {
			fmt.Fprintf(out, "\nRemaining follow-up:\n%s\n", tr.Last)
		}
		fmt.Fprintf(out, "\nFinal documentation note:\n%s\n", tr.Note)
		return nil
	},
}

// readNote returns the visit note from path, stdin for "-", or an
// interactive prompt when path is empty.
func readNote(path string, ans *docassist.LineAnswerer, cmd *cobra.Command) (string, error) {
	switch path {
	case "":
		note, err := ans.Ask(cmd.Context(), "Enter visit summary:\n> ")
		if err == io.EOF {
			return "", nil
		}
		return note, err
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), eris.Wrap(err, "document: read note from stdin")
	default:
		data, err := os.ReadFile(path)
		return string(data), eris.Wrap(err, "document: read note file")
	}
}

func init() {
	f := documentCmd.Flags()
	f.StringVar(&documentPhase, "phase", "", "patient phase: newly_engaged, ongoing, at_risk, all")
	f.StringVar(&documentNoteFile, "note-file", "", "read the visit note from a file (- for stdin)")
	f.StringVar(&documentFields, "fields", "", "structured field table")
	f.IntVar(&documentMaxRounds, "max-rounds", 1, "follow-up rounds before finishing")
	f.BoolVar(&documentJSON, "json", false, "print the session transcript as JSON")
	rootCmd.AddCommand(documentCmd)
}
