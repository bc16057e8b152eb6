package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/helmcode/seo-ai/pkg/model"
)

var ErrInvalidRecommendation = errors.New("invalid recommendation")

var (
	openFenceRe  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	closeFenceRe = regexp.MustCompile("\\s*```$")
)

// ParseRecommendations decodes the provider reply into recommendations.
// An empty reply yields an empty, non-nil slice.
func ParseRecommendations(raw string) ([]model.Recommendation, error) {
	cleaned := stripFences(raw)
	if cleaned == "" || cleaned == "null" {
		return []model.Recommendation{}, nil
	}

	var recs []model.Recommendation
	if err := json.Unmarshal([]byte(cleaned), &recs); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}
	for i, rec := range recs {
		if err := validate(rec); err != nil {
			return nil, fmt.Errorf("recommendation %d: %w", i, err)
		}
	}
	return recs, nil
}

func validate(rec model.Recommendation) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidRecommendation)
	}
	if strings.TrimSpace(rec.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidRecommendation)
	}
	if !rec.Impact.Valid() {
		return fmt.Errorf("%w: unknown impact %q", ErrInvalidRecommendation, rec.Impact)
	}
	return nil
}

// stripFences removes a markdown fence such as ```json ... ``` wrapping the
// whole reply. Fences inside the JSON values are left alone.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = openFenceRe.ReplaceAllString(text, "")
	text = closeFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
