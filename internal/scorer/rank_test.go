package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  int
	}{
		{25, RankCritical},
		{10.0, RankCritical},
		{9.999, RankHigh},
		{7.0, RankHigh},
		{6.999, RankMedium},
		{4.0, RankMedium},
		{3.999, RankLow},
		{0, RankLow},
		{-8, RankLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Critical", Label(RankCritical))
	assert.Equal(t, "High", Label(RankHigh))
	assert.Equal(t, "Medium", Label(RankMedium))
	assert.Equal(t, "Low", Label(RankLow))
	assert.Equal(t, "Low", Label(RankLowest))
	assert.Len(t, PriorityLabels, 5)
	assert.Empty(t, Label(0))
}
