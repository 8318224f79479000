package pipeline

import (
	"sort"

	"github.com/sells-group/panel-triage/internal/model"
	"github.com/sells-group/panel-triage/internal/scorer"
)

// SortRows orders rows by rank ascending, then score descending. Rows that
// were never scored go last. Ties keep their input order.
func SortRows(rows []model.ScoredTask) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Scored() != b.Scored() {
			return a.Scored()
		}
		if !a.Scored() {
			return false
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Score > b.Score
	})
}

// LabelUnscored counts rows that carry no priority label.
const LabelUnscored = "Unscored"

// LabelCount is the number of rows with a given priority label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountLabels tallies rows per priority label in rank order. Labels with no
// rows are omitted.
func CountLabels(rows []model.ScoredTask) []LabelCount {
	byLabel := make(map[string]int)
	for _, r := range rows {
		label := r.Label
		if !r.Scored() {
			label = LabelUnscored
		}
		byLabel[label]++
	}

	var out []LabelCount
	seen := make(map[string]bool)
	for rank := scorer.RankCritical; rank <= scorer.RankLowest; rank++ {
		label := scorer.Label(rank)
		if seen[label] || byLabel[label] == 0 {
			continue
		}
		seen[label] = true
		out = append(out, LabelCount{Label: label, Count: byLabel[label]})
	}
	if n := byLabel[LabelUnscored]; n > 0 {
		out = append(out, LabelCount{Label: LabelUnscored, Count: n})
	}
	return out
}
