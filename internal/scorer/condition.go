// Package scorer implements rule-based task priority scoring: condition
// evaluation, per-rule matching, score accumulation, and rank tiers.
package scorer

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/panel-triage/internal/model"
)

// ErrTypeConversion is returned when an ordering operator is applied to a
// value that is not numeric.
var ErrTypeConversion = eris.New("value is not numeric")

// Evaluate applies op between a patient attribute and a rule value.
// Unknown operators evaluate to false without error. Ordering operators
// coerce both sides to numbers and fail with ErrTypeConversion when either
// side is not numeric; "in" fails with model.ErrMalformedListLiteral when the
// rule value is not a list literal.
func Evaluate(field model.Value, op model.Operator, ruleValue model.Value) (bool, error) {
	switch op {
	case model.OpEqual:
		return field.Equal(ruleValue), nil
	case model.OpNotEqual:
		return !field.Equal(ruleValue), nil
	case model.OpLess, model.OpGreater, model.OpLessEqual, model.OpGreaterEqual:
		return compareNumeric(field, op, ruleValue)
	case model.OpIn:
		list := ruleValue
		if list.Kind != model.KindList {
			parsed, err := model.ParseList(ruleValue.Raw)
			if err != nil {
				return false, err
			}
			list = parsed
		}
		return list.Contains(field), nil
	default:
		return false, nil
	}
}

func compareNumeric(field model.Value, op model.Operator, ruleValue model.Value) (bool, error) {
	a, ok := field.Float()
	if !ok {
		return false, eris.Wrapf(ErrTypeConversion, "scorer: patient value %q", field.String())
	}
	b, ok := ruleValue.Float()
	if !ok {
		return false, eris.Wrapf(ErrTypeConversion, "scorer: rule value %q", ruleValue.String())
	}

	switch op {
	case model.OpLess:
		return a < b, nil
	case model.OpGreater:
		return a > b, nil
	case model.OpLessEqual:
		return a <= b, nil
	default:
		return a >= b, nil
	}
}
