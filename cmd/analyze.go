package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/seo-ai/pkg/analyzer"
	"github.com/helmcode/seo-ai/pkg/formatter"
)

type analyzeOptions struct {
	outputFormat string
	delay        time.Duration
	premium      bool
}

func NewAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze URL",
		Short: "Run a simulated SEO analysis for a URL",
		Long: `Run the simulated SEO analyzer and print the dashboard.

Scores are derived from the URL itself, so the same URL always produces the same report.

Examples:
  # Analyze a site
  seo-ai analyze https://example.com

  # Bare hosts get https:// prepended
  seo-ai analyze example.com

  # Machine-readable output without the simulated scan delay
  seo-ai analyze example.com -o json --delay 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().DurationVar(&opts.delay, "delay", analyzer.DefaultDelay, "Simulated scan duration")
	cmd.Flags().BoolVar(&opts.premium, "premium", false, "Show the premium view (recommendations are fetched by the recommend command)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, rawURL string) error {
	url, err := checkURL(rawURL)
	if err != nil {
		return err
	}
	human := opts.outputFormat == "human"

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

	return formatter.DisplayResults(cmd.OutOrStdout(), report, nil, opts.premium, opts.outputFormat)
}

func checkURL(raw string) (string, error) {
	url := analyzer.NormalizeURL(raw)
	if err := analyzer.ValidateURL(url); err != nil {
		return "", err
	}
	return url, nil
}

// newSpinner starts a spinner on stderr. Structured output runs silently.
func newSpinner(cmd *cobra.Command, enabled bool, suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = suffix
	if enabled {
		s.Start()
	}
	return s
}

func printHeader(cmd *cobra.Command, url string) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(out)
	cyan.Fprintln(out, "🔍 SEO AI Analyzer")
	fmt.Fprintf(out, "🌐 URL: %s\n", url)
	fmt.Fprintln(out)
}

func printSuccess(cmd *cobra.Command, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg)
}

func printWarning(cmd *cobra.Command, msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(cmd.ErrOrStderr(), "! %s\n", msg)
}
