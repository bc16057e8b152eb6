package formatter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/seo-ai/pkg/analyzer"
	"github.com/helmcode/seo-ai/pkg/model"
)

func init() {
	color.NoColor = true
}

var recs = []model.Recommendation{{
	Title:       "Add a single H1",
	Description: "Every landing page needs exactly one descriptive H1.",
	CodeSnippet: "<h1>Fast shoes</h1>",
	Impact:      model.ImpactHigh,
}}

func TestDisplayResults_HumanFree(t *testing.T) {
	report := analyzer.Build("https://example.com", time.Now())
	var buf bytes.Buffer

	require.NoError(t, DisplayResults(&buf, report, recs, false, "human"))
	out := buf.String()

	assert.Contains(t, out, "SEO SCORE: 79/100")
	assert.Contains(t, out, "Critical improvements needed.")
	assert.Contains(t, out, "Backlinks:       4,734")
	assert.Contains(t, out, "Best Practices")
	assert.Contains(t, out, "Robots.txt is not optimized")
	assert.Contains(t, out, "UNLOCK PREMIUM AI INSIGHTS")
	assert.NotContains(t, out, "Add a single H1")
}

func TestDisplayResults_HumanPremium(t *testing.T) {
	report := analyzer.Build("https://example.com", time.Now())
	var buf bytes.Buffer

	require.NoError(t, DisplayResults(&buf, report, recs, true, "human"))
	out := buf.String()

	assert.Contains(t, out, "AI RECOMMENDATIONS")
	assert.Contains(t, out, "Add a single H1 [HIGH IMPACT]")
	assert.Contains(t, out, "<h1>Fast shoes</h1>")
	assert.NotContains(t, out, "UNLOCK PREMIUM")
}

func TestDisplayResults_JSON(t *testing.T) {
	report := analyzer.Build("https://example.com", time.Now())
	var buf bytes.Buffer

	require.NoError(t, DisplayResults(&buf, report, recs, true, "json"))

	var got Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 79, got.Report.OverallScore)
	assert.Equal(t, recs, got.Recommendations)
}

func TestDisplayResults_YAMLOmitsLockedRecommendations(t *testing.T) {
	report := analyzer.Build("https://example.com", time.Now())
	var buf bytes.Buffer

	require.NoError(t, DisplayResults(&buf, report, recs, false, "yaml"))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "report")
	assert.NotContains(t, got, "recommendations")
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "120", groupThousands(120))
	assert.Equal(t, "4,734", groupThousands(4734))
	assert.Equal(t, "1,234,567", groupThousands(1234567))
	assert.Equal(t, "-1,000", groupThousands(-1000))
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 12, "  ")
	assert.Equal(t, "  one two\n  three four", got)
}
