package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/panel-triage/internal/model"
)

func scored(id string, rank int, score float64) model.ScoredTask {
	return model.ScoredTask{Task: model.Task{ID: id}, Rank: rank, Score: score}
}

func TestSortRows(t *testing.T) {
	rows := []model.ScoredTask{
		{Task: model.Task{ID: "flag-1"}, Flag: model.FlagPatientNotFound},
		scored("low-a", 4, 1),
		scored("high", 2, 8),
		scored("crit-low", 1, 10),
		scored("low-b", 4, 1),
		scored("crit-high", 1, 15),
		{Task: model.Task{ID: "flag-2"}, Flag: model.FlagPatientAmbiguous},
		scored("neg", 4, -2),
	}
	SortRows(rows)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.Task.ID)
	}
	assert.Equal(t, []string{"crit-high", "crit-low", "high", "low-a", "low-b", "neg", "flag-1", "flag-2"}, ids)
}

func TestCountLabels(t *testing.T) {
	rows := []model.ScoredTask{
		scored("a", 4, 0), scored("b", 1, 12), scored("c", 4, 2),
		{Task: model.Task{ID: "d"}},
	}
	for i := range rows {
		if rows[i].Rank == 1 {
			rows[i].Label = "Critical"
		} else if rows[i].Rank == 4 {
			rows[i].Label = "Low"
		}
	}
	assert.Equal(t, []LabelCount{
		{Label: "Critical", Count: 1},
		{Label: "Low", Count: 2},
		{Label: LabelUnscored, Count: 1},
	}, CountLabels(rows))
	assert.Empty(t, CountLabels(nil))
}
