package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/helmcode/seo-ai/pkg/model"
)

// DefaultDelay mimics the time a real crawl of the target would take.
const DefaultDelay = 2500 * time.Millisecond

const (
	MetricPerformance   = "Performance"
	MetricAccessibility = "Accessibility"
	MetricBestPractices = "Best Practices"
	MetricSEO           = "SEO"
)

var (
	ErrMalformedURL = errors.New("malformed url")
	ErrTimeout      = errors.New("analysis timed out")
)

// The issue list is the same for every site; only the scores vary.
var fixedIssues = []model.Issue{
	{Severity: model.SeverityHigh, Message: "LCP (Largest Contentful Paint) is > 2.5s"},
	{Severity: model.SeverityHigh, Message: "Missing H1 tag on landing page"},
	{Severity: model.SeverityMedium, Message: "Images missing Alt attributes (5 found)"},
	{Severity: model.SeverityLow, Message: "Low text-to-HTML ratio"},
	{Severity: model.SeverityMedium, Message: "Robots.txt is not optimized"},
}

// Analyzer produces mock SEO reports derived from the URL string alone.
type Analyzer struct {
	delay time.Duration
	now   func() time.Time
}

type Option func(*Analyzer)

// WithDelay overrides the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(a *Analyzer) {
		if d >= 0 {
			a.delay = d
		}
	}
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{delay: DefaultDelay, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze waits out the simulated delay and returns the report for rawURL.
// It fails only when ctx ends first: ErrTimeout for a deadline, the
// wrapped context error for cancellation.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*model.AnalysisReport, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, contextError(ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}
	return Build(rawURL, a.now()), nil
}

// contextError reports a deadline as ErrTimeout. Cancellation is passed
// through as is.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("analysis aborted: %w", err)
}

// Build assembles the report for rawURL stamped with ts.
func Build(rawURL string, ts time.Time) *model.AnalysisReport {
	seed := Seed(rawURL)
	pick := func(mod int64) int { return int(seed % mod) }

	overall := 60 + pick(35)

	perfStatus := model.StatusWarning
	if overall > 80 {
		perfStatus = model.StatusGood
	}
	seoStatus := model.StatusWarning
	if overall > 85 {
		seoStatus = model.StatusGood
	}

	issues := make([]model.Issue, len(fixedIssues))
	copy(issues, fixedIssues)

	return &model.AnalysisReport{
		URL:                 rawURL,
		OverallScore:        overall,
		Timestamp:           ts.UTC(),
		LoadingSpeedSeconds: 0.5 + float64(pick(40))/10,
		IsMobileFriendly:    seed%2 == 0,
		BacklinkCount:       120 + pick(5000),
		CategoryMetrics: []model.CategoryMetric{
			{
				Name:     MetricPerformance,
				Score:    overall - 5,
				MaxScore: 100,
				Status:   perfStatus,
				Details:  "Time to First Byte (TTFB) needs improvement.",
			},
			{
				Name:     MetricAccessibility,
				Score:    90 + pick(10),
				MaxScore: 100,
				Status:   model.StatusGood,
				Details:  "All ARIA labels present.",
			},
			{
				Name:     MetricBestPractices,
				Score:    70 + pick(20),
				MaxScore: 100,
				Status:   model.StatusWarning,
				Details:  "HTTPS is used, but some mixed content found.",
			},
			{
				Name:     MetricSEO,
				Score:    overall,
				MaxScore: 100,
				Status:   seoStatus,
				Details:  "Meta descriptions missing on 2 pages.",
			},
		},
		Issues: issues,
	}
}

// Hash is the 31-multiplier string hash over UTF-16 code units with int32
// wraparound at every step.
func Hash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

// Seed is |Hash(s)|, widened so that the minimum int32 stays positive.
func Seed(s string) int64 {
	seed := int64(Hash(s))
	if seed < 0 {
		seed = -seed
	}
	return seed
}

// NormalizeURL trims whitespace and assumes https when no scheme is given.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return raw
}

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty", ErrMalformedURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrMalformedURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("%w: missing host", ErrMalformedURL)
	}
	return nil
}
