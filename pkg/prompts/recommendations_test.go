package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

func TestBuildRecommendationsPrompt(t *testing.T) {
	p := BuildRecommendationsPrompt("https://example.com", []string{"Missing H1 tag", "Low text-to-HTML ratio"})

	assert.Contains(t, p, "for: https://example.com")
	assert.Contains(t, p, "Missing H1 tag\nLow text-to-HTML ratio")
	assert.Contains(t, p, "3 to 5")
}

func TestBuildRecommendationsPromptWithSchema(t *testing.T) {
	p, err := BuildRecommendationsPromptWithSchema("https://example.com", nil)
	require.NoError(t, err)

	assert.Contains(t, p, "https://example.com")
	assert.Contains(t, p, `"codeSnippet"`)
	assert.Contains(t, p, `"Medium"`)
}

func TestRecommendationSchema(t *testing.T) {
	s := RecommendationSchema()
	require.NotNil(t, s.Items)
	assert.Equal(t, genai.TypeArray, s.Type)
	assert.ElementsMatch(t, []string{"title", "description", "impact"}, s.Items.Required)
	assert.Equal(t, []string{"High", "Medium", "Low"}, s.Items.Properties["impact"].Enum)
	assert.NotContains(t, s.Items.Required, "codeSnippet")
}
