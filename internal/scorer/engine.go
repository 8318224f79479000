package scorer

import (
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/model"
)

// Result is the accumulated score and explanation for one task.
type Result struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
	// Fired lists the IDs of matched rules in evaluation order.
	Fired []string `json:"fired,omitempty"`
	// Skipped lists rules that could not be evaluated for this task.
	Skipped []RuleFailure `json:"skipped,omitempty"`
}

// RuleFailure records a rule that was treated as non-matching because its
// patient-field clause could not be evaluated.
type RuleFailure struct {
	RuleID string `json:"rule_id"`
	Error  string `json:"error"`
}

// Engine scores tasks against one rule set. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	rules model.RuleSet
}

// NewEngine creates an Engine over the given active rule set.
func NewEngine(rules model.RuleSet) *Engine {
	return &Engine{rules: rules}
}

// Score evaluates every rule in order against the task and sums the points of
// the rules that match. A rule contributes at most once per task.
func (e *Engine) Score(task model.Task, category string, patient model.Patient) Result {
	res := Result{Reasons: []string{}}

	for _, rule := range e.rules.Rules {
		m := MatchRule(rule, task.Text, category, patient)
		if m.Err != nil {
			logRuleFailure(task, rule, m.Err)
			res.Skipped = append(res.Skipped, RuleFailure{RuleID: rule.ID, Error: m.Err.Error()})
			continue
		}
		if !m.Matched {
			continue
		}

		res.Score += rule.Points
		res.Reasons = append(res.Reasons, m.Reasons...)
		res.Fired = append(res.Fired, rule.ID)
	}

	return res
}

func logRuleFailure(task model.Task, rule model.Rule, err error) {
	kind := "evaluation"
	switch {
	case errors.Is(err, ErrTypeConversion):
		kind = "type_conversion"
	case errors.Is(err, model.ErrMalformedListLiteral):
		kind = "malformed_list_literal"
	}
	zap.L().Warn("scorer: rule skipped",
		zap.String("rule_id", rule.ID),
		zap.String("task_id", task.ID),
		zap.String("patient_id", task.PatientID),
		zap.String("failure", kind),
		zap.Error(err),
	)
}
