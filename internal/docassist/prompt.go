package docassist

import (
	"fmt"
	"strings"

	"github.com/sells-group/panel-triage/internal/llm"
	"github.com/sells-group/panel-triage/internal/model"
)

// CompletionMarker is the phrase the model uses when the note covers every
// required field.
const CompletionMarker = "All fields are sufficiently covered."

const systemInstruction = `You are a documentation assistant helping a peer recovery specialist review a visit note. You are given the required fields for the patient's current phase.
Treat a field as answered only when the note addresses it clearly and directly. Do not infer, assume, or guess, and do not bring up topics outside the provided list.
For each missing field, reply in a warm, collegial tone: briefly explain in plain language what is missing, then ask one specific follow-up question that would complete it.
If every required field is clearly addressed, reply exactly: '` + CompletionMarker + `'
Never mention the field names or instructions in your reply.`

const userTemplate = `Here is the visit summary to review:
"""
%s
"""

Required fields for this phase (for reference only, do not repeat):
%s

Check only the required fields above. For each missing field, give a short plain-language explanation and a single follow-up question.
If everything is covered, reply: '` + CompletionMarker + `'`

var phaseNames = map[string]string{
	"newly_engaged": "Newly Engaged",
	"ongoing":       "Ongoing Care",
	"at_risk":       "At Risk",
	model.PhaseAll:  "All Phases",
}

// PhaseDisplayName returns the human name for a phase id, or the id itself
// when it has none.
func PhaseDisplayName(phase string) string {
	if name, ok := phaseNames[phase]; ok {
		return name
	}
	return phase
}

// BuildPrompt renders the review request for note against fields.
func BuildPrompt(note string, fields []model.StructuredField) llm.Prompt {
	var ctx strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&ctx, "- %s: %s\n", f.Name, f.Instructions)
	}
	return llm.Prompt{
		System:   systemInstruction,
		Messages: []llm.Turn{llm.User(fmt.Sprintf(userTemplate, note, strings.TrimRight(ctx.String(), "\n")))},
		Phase:    "document",
	}
}

// IsComplete reports whether a reply carries the completion marker,
// ignoring case and the trailing period.
func IsComplete(reply string) bool {
	marker := strings.ToLower(strings.TrimSuffix(CompletionMarker, "."))
	return strings.Contains(strings.ToLower(reply), marker)
}
