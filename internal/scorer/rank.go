package scorer

// Rank thresholds. A score at a threshold belongs to the higher tier.
const (
	CriticalThreshold = 10.0
	HighThreshold     = 7.0
	MediumThreshold   = 4.0
)

// Priority ranks. RankLowest has a label but Classify never returns it.
const (
	RankCritical = 1
	RankHigh     = 2
	RankMedium   = 3
	RankLow      = 4
	RankLowest   = 5
)

// PriorityLabels maps ranks to display labels. Ranks 4 and 5 share "Low".
var PriorityLabels = map[int]string{
	RankCritical: "Critical",
	RankHigh:     "High",
	RankMedium:   "Medium",
	RankLow:      "Low",
	RankLowest:   "Low",
}

// Classify maps a score to a priority rank.
func Classify(score float64) int {
	switch {
	case score >= CriticalThreshold:
		return RankCritical
	case score >= HighThreshold:
		return RankHigh
	case score >= MediumThreshold:
		return RankMedium
	default:
		return RankLow
	}
}

// Label returns the display label for rank, or "" for an unknown rank.
func Label(rank int) string {
	return PriorityLabels[rank]
}
