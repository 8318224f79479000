package classify

import (
	"fmt"
	"strings"

	"github.com/sells-group/panel-triage/internal/model"
)

const guidance = `You are a manager of social workers at a value-based-care company that treats patients with severe mental illnesses who use Medicaid or Medicare for insurance. You need to classify tasks for patient care into one of the following categories:
%s
Tasks involving clinical symptom tracking, safety planning, early warning signs of relapse, or psychiatric stabilization should be categorized under Clinical Stability. Tasks that involve legal, financial, housing, or insurance support should be categorized under Social Stability, even if they involve patient empowerment.
`

const taskPrompt = `Now categorize the following task:
%q

Respond with only the category name.`

// BuildSystemPrompt renders the category guidance followed by the labeled
// examples. It is identical for every task in a run.
func BuildSystemPrompt(examples []model.Example) string {
	var cats strings.Builder
	for _, c := range model.Categories {
		fmt.Fprintf(&cats, "- %s\n", c)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, guidance, cats.String())
	if len(examples) > 0 {
		sb.WriteString("Here are some example tasks and their categories:\n")
		for _, ex := range examples {
			fmt.Fprintf(&sb, "- %q → %s\n", ex.Task, ex.Category)
		}
	}
	return sb.String()
}

// BuildTaskPrompt renders the per-task user message.
func BuildTaskPrompt(task string) string {
	return fmt.Sprintf(taskPrompt, task)
}
