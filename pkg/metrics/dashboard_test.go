package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/seo-ai/pkg/analyzer"
	"github.com/helmcode/seo-ai/pkg/model"
)

func TestBandFor(t *testing.T) {
	tests := map[int]Band{
		100: BandExcellent,
		90:  BandExcellent,
		89:  BandFair,
		70:  BandFair,
		69:  BandPoor,
		0:   BandPoor,
	}
	for score, want := range tests {
		assert.Equal(t, want, BandFor(score), score)
	}
}

func TestVerdictFor(t *testing.T) {
	assert.Equal(t, VerdictGood, VerdictFor(81))
	assert.Equal(t, VerdictPoor, VerdictFor(80))
}

func TestBuild_FreePlanIsLocked(t *testing.T) {
	report := analyzer.Build("https://example.com", time.Now())
	recs := []model.Recommendation{{Title: "t", Description: "d", Impact: model.ImpactLow}}

	d := Build(report, false, recs)
	assert.True(t, d.Locked)
	assert.Empty(t, d.Recommendations)

	assert.Equal(t, 79, d.Gauge.Score)
	assert.Equal(t, 21, d.Gauge.Remaining)
	assert.Equal(t, BandFair, d.Gauge.Band)
	assert.Equal(t, VerdictPoor, d.Verdict)
	assert.Equal(t, 4734, d.Stats.BacklinkCount)

	require.Len(t, d.Bars, 4)
	assert.Equal(t, "Performance", d.Bars[0].Name)
	assert.False(t, d.Bars[0].Highlight) // 74
	assert.True(t, d.Bars[1].Highlight)  // 94
	assert.True(t, d.Bars[2].Highlight)  // 84
	assert.False(t, d.Bars[3].Highlight) // 79

	require.Len(t, d.Issues, 5)
	assert.True(t, d.Issues[0].Alert)
	assert.False(t, d.Issues[2].Alert)
}

func TestBuild_PremiumCarriesRecommendations(t *testing.T) {
	report := analyzer.Build("a", time.Now())
	recs := []model.Recommendation{{Title: "t", Description: "d", Impact: model.ImpactHigh}}

	d := Build(report, true, recs)
	assert.False(t, d.Locked)
	assert.Equal(t, recs, d.Recommendations)
	assert.Equal(t, VerdictGood, d.Verdict)
}
