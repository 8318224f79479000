package pipeline

import (
	"github.com/sells-group/panel-triage/internal/model"
)

func testPanel() *model.Panel {
	patients := []model.Patient{
		{ID: "P1", Name: "Ada", Attrs: map[string]model.Value{
			"patient_id": model.StringValue("P1"),
			"age":        model.ParseValue("70"),
			"risk_level": model.ParseValue("high"),
		}},
		{ID: "P2", Name: "Ben", Attrs: map[string]model.Value{
			"patient_id": model.StringValue("P2"),
			"age":        model.ParseValue("30"),
			"risk_level": model.ParseValue("low"),
		}},
		{ID: "DUP", Name: "Cy"},
		{ID: "DUP", Name: "Cy Jr"},
	}
	return model.NewPanel([]string{"patient_id", "patient_name", "age", "risk_level"}, patients)
}

func testRules() model.RuleSet {
	return model.RuleSet{Source: "test", Rules: []model.Rule{
		{ID: "R1", TaskCategory: model.CategoryClinicalStability, Points: 5},
		{ID: "R2", Keyword: "crisis", Points: 3},
		{ID: "R3", PatientField: "age", Operator: model.OpGreater, PatientValue: model.ParseValue("65"), Points: 3},
		{ID: "R4", TaskCategory: model.CategoryMedicationAdherence, Points: 4},
	}}
}

func newTask(id, patientID, text string) model.Task {
	return model.Task{ID: id, PatientID: patientID, PatientName: "n/a", Text: text, Source: model.SourceFreeform}
}
