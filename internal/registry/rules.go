package registry

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/panel-triage/internal/fetcher"
	"github.com/sells-group/panel-triage/internal/model"
)

// Rule table columns.
const (
	ColRuleID         = "rule_id"
	ColTaskCategory   = "task_category"
	ColKeyword        = "keyword"
	ColPatientField   = "patient_field"
	ColOperator       = "patient_field_operator"
	ColPatientValue   = "patient_field_value"
	ColPoints         = "points"
	ColConditionField = "condition_field"
	ColConditionValue = "condition_value"
)

// RuleColumns are the columns every rule table must carry.
var RuleColumns = []string{
	ColRuleID, ColTaskCategory, ColKeyword, ColPatientField,
	ColOperator, ColPatientValue, ColPoints,
}

// RejectedRow is a table row that could not be loaded.
type RejectedRow struct {
	// Row is the 1-based data row number, excluding the header.
	Row    int    `json:"row"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// LoadRules reads the rule table at path. Rows whose points are not numeric
// or that have no rule_id are rejected and logged; the rest keep file order.
func LoadRules(ctx context.Context, path string) (model.RuleSet, []RejectedRow, error) {
	tbl, err := fetcher.ReadTable(ctx, path)
	if err != nil {
		return model.RuleSet{}, nil, eris.Wrap(err, "registry: load rules")
	}
	return ParseRules(tbl)
}

// ParseRules converts a rule table into a RuleSet.
func ParseRules(tbl *fetcher.Table) (model.RuleSet, []RejectedRow, error) {
	if err := requireColumns(tbl, RuleColumns...); err != nil {
		return model.RuleSet{}, nil, err
	}

	rs := model.RuleSet{Source: tbl.Name, Rules: make([]model.Rule, 0, len(tbl.Rows))}
	var rejected []RejectedRow
	for i, row := range tbl.Rows {
		r, err := parseRuleRow(tbl, row)
		if err != nil {
			rej := RejectedRow{Row: i + 1, ID: tbl.Get(row, ColRuleID), Reason: err.Error()}
			zap.L().Warn("registry: skipping malformed rule row",
				zap.Int("row", rej.Row),
				zap.String("rule_id", rej.ID),
				zap.Error(err),
			)
			rejected = append(rejected, rej)
			continue
		}
		rs.Rules = append(rs.Rules, r)
	}

	return rs, rejected, nil
}

func parseRuleRow(tbl *fetcher.Table, row []string) (model.Rule, error) {
	r := model.Rule{
		ID:             tbl.Get(row, ColRuleID),
		TaskCategory:   tbl.Get(row, ColTaskCategory),
		Keyword:        tbl.Get(row, ColKeyword),
		PatientField:   tbl.Get(row, ColPatientField),
		Operator:       model.Operator(tbl.Get(row, ColOperator)),
		PatientValue:   model.ParseValue(tbl.Get(row, ColPatientValue)),
		ConditionField: tbl.Get(row, ColConditionField),
		ConditionValue: model.ParseValue(tbl.Get(row, ColConditionValue)),
	}
	if r.ID == "" {
		return r, eris.New("missing rule_id")
	}

	raw := tbl.Get(row, ColPoints)
	if raw == "" {
		return r, eris.New("missing points")
	}
	pts, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return r, eris.Errorf("points %q is not numeric", raw)
	}
	r.Points = pts

	return r, nil
}
