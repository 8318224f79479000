package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredFieldAppliesTo(t *testing.T) {
	f := StructuredField{Name: "housing", Phases: []string{"newly_engaged", "at_risk"}}
	assert.True(t, f.AppliesTo("newly_engaged"))
	assert.True(t, f.AppliesTo(" at_risk "))
	assert.False(t, f.AppliesTo("ongoing"))
	assert.False(t, f.AppliesTo(PhaseAll))

	everywhere := StructuredField{Name: "safety", Phases: []string{"all"}}
	assert.True(t, everywhere.AppliesTo("ongoing"))
	assert.True(t, everywhere.AppliesTo(PhaseAll))
}

func TestFieldsForPhase(t *testing.T) {
	fields := []StructuredField{
		{Name: "a", Phases: []string{"ongoing"}},
		{Name: "b", Phases: []string{"all"}},
		{Name: "c", Phases: []string{"at_risk"}},
	}
	got := FieldsForPhase(fields, "ongoing")
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)

	only := func(got []StructuredField) []string {
		var names []string
		for _, f := range got {
			names = append(names, f.Name)
		}
		return names
	}
	assert.Equal(t, []string{"b"}, only(FieldsForPhase(fields, PhaseAll)))
	assert.Equal(t, []string{"b"}, only(FieldsForPhase(fields, "unknown")))
	assert.Empty(t, FieldsForPhase(fields[:1], "unknown"))
}
