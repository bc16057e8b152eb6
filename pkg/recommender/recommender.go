package recommender

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/helmcode/seo-ai/pkg/llm"
	"github.com/helmcode/seo-ai/pkg/model"
	"github.com/helmcode/seo-ai/pkg/parser"
	"github.com/helmcode/seo-ai/pkg/prompts"
)

const DefaultTimeout = 60 * time.Second

// Fetcher turns a URL and its issue list into AI recommendations. It never
// fails: problems degrade into a single synthetic recommendation.
type Fetcher struct {
	llm     llm.LLM
	timeout time.Duration
	logger  *log.Logger
}

type Option func(*Fetcher)

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// New builds a Fetcher. A nil l means no provider is configured.
func New(l llm.LLM, opts ...Option) *Fetcher {
	f := &Fetcher{llm: l, timeout: DefaultTimeout, logger: log.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Configured reports whether a provider is available.
func (f *Fetcher) Configured() bool {
	return f.llm != nil
}

func MissingConfiguration() model.Recommendation {
	return model.Recommendation{
		Title:       "Configuration Error",
		Description: "API Key is missing. Please configure the environment.",
		Impact:      model.ImpactHigh,
	}
}

func Unavailable() model.Recommendation {
	return model.Recommendation{
		Title:       "AI Analysis Unavailable",
		Description: "We couldn't generate live recommendations at this moment. Please try again later.",
		Impact:      model.ImpactMedium,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string, issues []string) []model.Recommendation {
	if f.llm == nil {
		f.logger.Printf("recommender: API key is missing")
		return []model.Recommendation{MissingConfiguration()}
	}

	recs, err := f.fetch(ctx, url, issues)
	if err != nil {
		f.logger.Printf("recommender: generation failed for %s (%s): %v", url, f.llm.GetModel(), err)
		return []model.Recommendation{Unavailable()}
	}
	return recs
}

func (f *Fetcher) fetch(ctx context.Context, url string, issues []string) ([]model.Recommendation, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var raw string
	var err error
	if jc, ok := f.llm.(llm.JSONChatter); ok {
		raw, err = jc.ChatJSON(ctx, prompts.BuildRecommendationsPrompt(url, issues), prompts.RecommendationSchema())
	} else {
		var prompt string
		prompt, err = prompts.BuildRecommendationsPromptWithSchema(url, issues)
		if err != nil {
			return nil, err
		}
		raw, err = f.llm.Chat(ctx, prompt)
	}
	if err != nil {
		return nil, fmt.Errorf("LLM chat: %w", err)
	}

	return parser.ParseRecommendations(raw)
}
