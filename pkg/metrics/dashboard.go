package metrics

import (
	"time"

	"github.com/helmcode/seo-ai/pkg/model"
)

// Band buckets a score for gauge coloring.
type Band string

const (
	BandExcellent Band = "excellent"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

const (
	VerdictGood = "Your site is ranking well."
	VerdictPoor = "Critical improvements needed."
)

// Dashboard is the render-ready summary of a report for one plan.
type Dashboard struct {
	URL             string                 `json:"url" yaml:"url"`
	UpdatedAt       time.Time              `json:"updatedAt" yaml:"updatedAt"`
	Gauge           Gauge                  `json:"gauge" yaml:"gauge"`
	Verdict         string                 `json:"verdict" yaml:"verdict"`
	Stats           QuickStats             `json:"stats" yaml:"stats"`
	Bars            []Bar                  `json:"bars" yaml:"bars"`
	Issues          []IssueRow             `json:"issues" yaml:"issues"`
	Locked          bool                   `json:"locked" yaml:"locked"`
	Recommendations []model.Recommendation `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

type Gauge struct {
	Score     int  `json:"score" yaml:"score"`
	Remaining int  `json:"remaining" yaml:"remaining"`
	Band      Band `json:"band" yaml:"band"`
}

type QuickStats struct {
	LoadingSpeedSeconds float64 `json:"loadingSpeedSeconds" yaml:"loadingSpeedSeconds"`
	IsMobileFriendly    bool    `json:"isMobileFriendly" yaml:"isMobileFriendly"`
	BacklinkCount       int     `json:"backlinkCount" yaml:"backlinkCount"`
}

// Bar is one row of the category chart. Highlight marks scores above 80.
type Bar struct {
	Name      string       `json:"name" yaml:"name"`
	Score     int          `json:"score" yaml:"score"`
	MaxScore  int          `json:"maxScore" yaml:"maxScore"`
	Status    model.Status `json:"status" yaml:"status"`
	Highlight bool         `json:"highlight" yaml:"highlight"`
}

type IssueRow struct {
	Severity model.Severity `json:"severity" yaml:"severity"`
	Message  string         `json:"message" yaml:"message"`
	Alert    bool           `json:"alert" yaml:"alert"`
}

func BandFor(score int) Band {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 70:
		return BandFair
	default:
		return BandPoor
	}
}

func VerdictFor(overall int) string {
	if overall > 80 {
		return VerdictGood
	}
	return VerdictPoor
}

// Build derives the dashboard for report. Recommendations are attached only
// when the plan is unlocked.
func Build(report *model.AnalysisReport, premium bool, recs []model.Recommendation) *Dashboard {
	d := &Dashboard{
		URL:       report.URL,
		UpdatedAt: report.Timestamp,
		Gauge: Gauge{
			Score:     report.OverallScore,
			Remaining: 100 - report.OverallScore,
			Band:      BandFor(report.OverallScore),
		},
		Verdict: VerdictFor(report.OverallScore),
		Stats: QuickStats{
			LoadingSpeedSeconds: report.LoadingSpeedSeconds,
			IsMobileFriendly:    report.IsMobileFriendly,
			BacklinkCount:       report.BacklinkCount,
		},
		Bars:   make([]Bar, 0, len(report.CategoryMetrics)),
		Issues: make([]IssueRow, 0, len(report.Issues)),
		Locked: !premium,
	}
	for _, m := range report.CategoryMetrics {
		d.Bars = append(d.Bars, Bar{
			Name:      m.Name,
			Score:     m.Score,
			MaxScore:  m.MaxScore,
			Status:    m.Status,
			Highlight: m.Score > 80,
		})
	}
	for _, issue := range report.Issues {
		d.Issues = append(d.Issues, IssueRow{
			Severity: issue.Severity,
			Message:  issue.Message,
			Alert:    issue.Severity == model.SeverityHigh,
		})
	}
	if premium {
		d.Recommendations = recs
	}
	return d
}
