package model

// Operator is a comparison applied between a patient attribute and a rule value.
type Operator string

// Supported operators.
const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpIn           Operator = "in"
)

// Operators lists the supported operators in display order.
var Operators = []Operator{OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual, OpIn}

// operatorDescriptions is used by the rules guide.
var operatorDescriptions = map[Operator]string{
	OpEqual:        "equal to",
	OpNotEqual:     "not equal to",
	OpLess:         "less than",
	OpGreater:      "greater than",
	OpLessEqual:    "less than or equal",
	OpGreaterEqual: "greater than or equal",
	OpIn:           "list membership",
}

// Known reports whether op is one of the supported operators.
func (op Operator) Known() bool {
	_, ok := operatorDescriptions[op]
	return ok
}

// Description returns a short human description of the operator.
func (op Operator) Description() string {
	return operatorDescriptions[op]
}

// Rule is one row of the priority rule table. Empty strings mean the
// corresponding clause is not set.
type Rule struct {
	ID             string   `json:"rule_id"`
	TaskCategory   string   `json:"task_category,omitempty"`
	Keyword        string   `json:"keyword,omitempty"`
	PatientField   string   `json:"patient_field,omitempty"`
	Operator       Operator `json:"patient_field_operator,omitempty"`
	PatientValue   Value    `json:"-"`
	Points         float64  `json:"points"`
	ConditionField string   `json:"condition_field,omitempty"`
	ConditionValue Value    `json:"-"`
}

// HasCondition reports whether the rule carries a gating clause.
func (r Rule) HasCondition() bool {
	return r.ConditionField != ""
}

// RuleSet is the ordered, read-only set of rules active for one run.
type RuleSet struct {
	Rules []Rule
	// Source names where the rules came from, for logs.
	Source string
}

// Len returns the number of rules.
func (rs RuleSet) Len() int {
	return len(rs.Rules)
}
