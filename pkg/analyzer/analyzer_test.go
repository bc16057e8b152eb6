package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/seo-ai/pkg/model"
)

var sampleURLs = []string{
	"",
	"a",
	"https://example.com",
	"https://google.com",
	"http://localhost:3000/path?q=1",
	"héllo😀",
	"https://a-very-long-domain-name-that-will-overflow-the-hash-many-times.example.org/some/deep/path",
}

func TestHash_KnownValues(t *testing.T) {
	assert.Equal(t, int32(0), Hash(""))
	assert.Equal(t, int32(97), Hash("a"))
	assert.Equal(t, int32(632849614), Hash("https://example.com"))
	assert.Equal(t, int32(-760432549), Hash("https://google.com"))
	// Surrogate pairs hash as two UTF-16 units.
	assert.Equal(t, int32(291564465), Hash("héllo😀"))
}

func TestSeed_NeverNegative(t *testing.T) {
	for _, s := range sampleURLs {
		assert.GreaterOrEqual(t, Seed(s), int64(0), s)
	}
	assert.Equal(t, int64(760432549), Seed("https://google.com"))
}

func TestBuild_ExampleCom(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := Build("https://example.com", ts)

	seed := int64(632849614)
	assert.Equal(t, "https://example.com", r.URL)
	assert.Equal(t, 60+int(seed%35), r.OverallScore)
	assert.Equal(t, 79, r.OverallScore)
	assert.InDelta(t, 0.5+float64(seed%40)/10, r.LoadingSpeedSeconds, 1e-9)
	assert.InDelta(t, 1.9, r.LoadingSpeedSeconds, 1e-9)
	assert.True(t, r.IsMobileFriendly)
	assert.Equal(t, 4734, r.BacklinkCount)
	assert.Equal(t, ts, r.Timestamp)

	perf, ok := r.Metric(MetricPerformance)
	require.True(t, ok)
	assert.Equal(t, 74, perf.Score)
	assert.Equal(t, model.StatusWarning, perf.Status)

	acc, _ := r.Metric(MetricAccessibility)
	assert.Equal(t, 94, acc.Score)
	bp, _ := r.Metric(MetricBestPractices)
	assert.Equal(t, 84, bp.Score)
}

func TestBuild_Deterministic(t *testing.T) {
	for _, s := range sampleURLs {
		a := Build(s, time.Unix(0, 0))
		b := Build(s, time.Unix(1000, 0))
		b.Timestamp = a.Timestamp
		assert.Equal(t, a, b, s)
	}
}

func TestBuild_RangesAndDerivedFields(t *testing.T) {
	for _, s := range sampleURLs {
		r := Build(s, time.Now())

		assert.GreaterOrEqual(t, r.OverallScore, 60, s)
		assert.LessOrEqual(t, r.OverallScore, 94, s)
		assert.GreaterOrEqual(t, r.LoadingSpeedSeconds, 0.5, s)
		assert.LessOrEqual(t, r.LoadingSpeedSeconds, 4.4+1e-9, s)
		assert.GreaterOrEqual(t, r.BacklinkCount, 120, s)
		assert.LessOrEqual(t, r.BacklinkCount, 5119, s)

		require.Len(t, r.CategoryMetrics, 4)
		names := []string{MetricPerformance, MetricAccessibility, MetricBestPractices, MetricSEO}
		for i, m := range r.CategoryMetrics {
			assert.Equal(t, names[i], m.Name)
			assert.Equal(t, 100, m.MaxScore)
		}

		seo, _ := r.Metric(MetricSEO)
		perf, _ := r.Metric(MetricPerformance)
		assert.Equal(t, r.OverallScore, seo.Score, s)
		assert.Equal(t, r.OverallScore-5, perf.Score, s)
	}
}

func TestBuild_StatusThresholds(t *testing.T) {
	// "a" yields overall 87: above both thresholds.
	r := Build("a", time.Now())
	require.Equal(t, 87, r.OverallScore)
	perf, _ := r.Metric(MetricPerformance)
	seo, _ := r.Metric(MetricSEO)
	assert.Equal(t, model.StatusGood, perf.Status)
	assert.Equal(t, model.StatusGood, seo.Status)

	for _, s := range sampleURLs {
		r := Build(s, time.Now())
		acc, _ := r.Metric(MetricAccessibility)
		bp, _ := r.Metric(MetricBestPractices)
		assert.Equal(t, model.StatusGood, acc.Status)
		assert.Equal(t, model.StatusWarning, bp.Status)
	}
}

func TestBuild_FixedIssueList(t *testing.T) {
	first := Build("https://example.com", time.Now()).Issues
	require.Len(t, first, 5)
	for _, s := range sampleURLs {
		assert.Equal(t, first, Build(s, time.Now()).Issues, s)
	}
	assert.Equal(t, model.SeverityHigh, first[0].Severity)
	assert.Equal(t, "Robots.txt is not optimized", first[4].Message)

	// Mutating one report must not leak into the next.
	first[0].Message = "changed"
	assert.NotEqual(t, "changed", Build("x", time.Now()).Issues[0].Message)
}

func TestAnalyze_NoDelay(t *testing.T) {
	ts := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	a := New(WithDelay(0), WithClock(func() time.Time { return ts }))

	r, err := a.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, ts, r.Timestamp)
	assert.Equal(t, 79, r.OverallScore)
}

func TestAnalyze_ContextEndsDuringDelay(t *testing.T) {
	a := New(WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	r, err := a.Analyze(ctx, "https://example.com")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAnalyze_CancelledWithoutDelay(t *testing.T) {
	a := New(WithDelay(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, "https://example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestAnalyze_CancelledDuringDelay(t *testing.T) {
	a := New(WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	r, err := a.Analyze(ctx, "https://example.com")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestNormalizeAndValidateURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "example.com", want: "https://example.com"},
		{in: "  https://example.com/a  ", want: "https://example.com/a"},
		{in: "http://localhost:8080", want: "http://localhost:8080"},
		{in: "", want: "", wantErr: true},
		{in: "ftp://example.com", want: "ftp://example.com", wantErr: true},
		{in: "https://", want: "https://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeURL(tt.in)
			assert.Equal(t, tt.want, got)
			err := ValidateURL(got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
