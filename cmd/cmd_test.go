package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/seo-ai/pkg/analyzer"
	"github.com/helmcode/seo-ai/pkg/formatter"
	"github.com/helmcode/seo-ai/pkg/model"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LLM_PROVIDER", "LLM_MODEL", "GEMINI_API_KEY", "API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
}

func TestAnalyze_JSON(t *testing.T) {
	out, err := execute(t, NewAnalyzeCmd(), "example.com", "-o", "json", "--delay", "0")
	require.NoError(t, err)

	var got formatter.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://example.com", got.Report.URL)
	assert.Equal(t, 79, got.Report.OverallScore)
	assert.Empty(t, got.Recommendations)
}

func TestAnalyze_Human(t *testing.T) {
	out, err := execute(t, NewAnalyzeCmd(), "https://example.com", "--delay", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "URL: https://example.com")
	assert.Contains(t, out, "Analysis complete")
	assert.Contains(t, out, "SEO SCORE: 79/100")
	assert.Contains(t, out, "UNLOCK PREMIUM AI INSIGHTS")
}

func TestAnalyze_InvalidURL(t *testing.T) {
	_, err := execute(t, NewAnalyzeCmd(), "ftp://example.com", "--delay", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, analyzer.ErrMalformedURL)
}

func TestRecommend_WithoutAPIKey(t *testing.T) {
	clearLLMEnv(t)

	out, err := execute(t, NewRecommendCmd(), "example.com", "-o", "json", "--delay", "0")
	require.NoError(t, err)

	var got formatter.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, "Configuration Error", got.Recommendations[0].Title)
	assert.Equal(t, model.ImpactHigh, got.Recommendations[0].Impact)
}

func TestRecommend_UnknownProvider(t *testing.T) {
	clearLLMEnv(t)

	_, err := execute(t, NewRecommendCmd(), "example.com", "--provider", "mistral", "--delay", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestRecommend_ProviderHelpListsProviders(t *testing.T) {
	flag := NewRecommendCmd().Flags().Lookup("provider")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "gemini, claude, openai")
}
