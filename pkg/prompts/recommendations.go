package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// RecommendationSchema is the structured-output schema for the reply: an array
// of {title, description, codeSnippet?, impact}.
func RecommendationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":       {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
				"codeSnippet": {
					Type:        genai.TypeString,
					Description: "Optional HTML/CSS/JS snippet to fix the issue",
				},
				"impact": {
					Type: genai.TypeString,
					Enum: []string{"High", "Medium", "Low"},
				},
			},
			Required: []string{"title", "description", "impact"},
		},
	}
}

func BuildRecommendationsPrompt(url string, issues []string) string {
	return fmt.Sprintf(`You are an expert SEO Technical Consultant.
Analyze the following website context and reported issues for: %s

Reported Issues:
%s

Provide 3 to 5 highly specific, technical, and actionable recommendations to improve ranking.
Focus on "Low Hanging Fruit" that saves money on paid ads.

Return the response in JSON format conforming to the schema provided.`, url, strings.Join(issues, "\n"))
}

// BuildRecommendationsPromptWithSchema inlines the schema for providers that
// cannot enforce it natively.
func BuildRecommendationsPromptWithSchema(url string, issues []string) (string, error) {
	schemaJSON, err := json.MarshalIndent(RecommendationSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}

	return fmt.Sprintf(`%s

Schema:
%s

Respond with the JSON array only, for example:
[
  {
    "title": "short action title",
    "description": "what to change and why it helps ranking",
    "codeSnippet": "optional HTML/CSS/JS fix",
    "impact": "High|Medium|Low"
  }
]`, BuildRecommendationsPrompt(url, issues), string(schemaJSON)), nil
}
