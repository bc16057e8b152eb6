package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/helmcode/seo-ai/pkg/analyzer"
	"github.com/helmcode/seo-ai/pkg/config"
	"github.com/helmcode/seo-ai/pkg/formatter"
	"github.com/helmcode/seo-ai/pkg/llm"
	"github.com/helmcode/seo-ai/pkg/recommender"
)

type recommendOptions struct {
	outputFormat string
	delay        time.Duration
	provider     string
	model        string
}

func NewRecommendCmd() *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend URL",
		Short: "Analyze a URL and fetch AI recommendations for its issues",
		Long: `Run the simulated SEO analysis and ask the configured LLM for 3 to 5
actionable recommendations addressing the issues found.

The API key is read from GEMINI_API_KEY (or API_KEY), ANTHROPIC_API_KEY or
OPENAI_API_KEY depending on the provider. Without a key a configuration
notice is shown in place of live recommendations.

Examples:
  # Use the default provider (Gemini)
  seo-ai recommend https://example.com

  # Use Claude with a specific model
  seo-ai recommend example.com --provider claude --model claude-sonnet-4-20250514

  # YAML output
  seo-ai recommend example.com -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().DurationVar(&opts.delay, "delay", analyzer.DefaultDelay, "Simulated scan duration")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "LLM provider ("+llm.ProviderNames()+"). Defaults to LLM_PROVIDER")
	cmd.Flags().StringVar(&opts.model, "model", "", "LLM model to use (overrides default)")

	return cmd
}

func runRecommend(cmd *cobra.Command, opts *recommendOptions, rawURL string) error {
	url, err := checkURL(rawURL)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.provider != "" {
		cfg.LLMProvider = opts.provider
	}
	if opts.model != "" {
		cfg.LLMModel = opts.model
	}

	fetcher, err := newFetcher(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	human := opts.outputFormat == "human"
	if !fetcher.Configured() {
		printWarning(cmd, "No API key configured for "+cfg.LLMProvider+"; live recommendations are disabled")
	}

	if human {
		printHeader(cmd, url)
	}

	s := newSpinner(cmd, human, " Scanning site structure...")
	report, err := analyzer.New(analyzer.WithDelay(opts.delay)).Analyze(cmd.Context(), url)
	s.Stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if human {
		printSuccess(cmd, "Analysis complete")
	}

	s = newSpinner(cmd, human, " Generating AI recommendations...")
	recs := fetcher.Fetch(cmd.Context(), url, report.IssueMessages())
	s.Stop()
	if human {
		printSuccess(cmd, fmt.Sprintf("Received %d recommendations", len(recs)))
	}

	return formatter.DisplayResults(cmd.OutOrStdout(), report, recs, true, opts.outputFormat)
}

// newFetcher builds the recommendation fetcher from configuration. A missing
// API key is not an error: the fetcher answers with a configuration notice.
func newFetcher(ctx context.Context, cfg *config.Config) (*recommender.Fetcher, error) {
	provider, err := cfg.Provider()
	if err != nil {
		return nil, err
	}

	client, err := llm.New(ctx, provider, cfg.APIKey(provider), cfg.LLMModel)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		client = nil
	case err != nil:
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return recommender.New(client, recommender.WithTimeout(cfg.RecommendationTimeout)), nil
}
