package model

import "time"

// Status is the health tag attached to a category metric.
type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Severity ranks an issue found on the analyzed site.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Impact ranks a recommendation.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Valid reports whether i is one of the known impact levels.
func (i Impact) Valid() bool {
	switch i {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	}
	return false
}

type AnalysisReport struct {
	URL                 string           `json:"url" yaml:"url"`
	OverallScore        int              `json:"overallScore" yaml:"overallScore"`
	Timestamp           time.Time        `json:"timestamp" yaml:"timestamp"`
	LoadingSpeedSeconds float64          `json:"loadingSpeedSeconds" yaml:"loadingSpeedSeconds"`
	IsMobileFriendly    bool             `json:"isMobileFriendly" yaml:"isMobileFriendly"`
	BacklinkCount       int              `json:"backlinkCount" yaml:"backlinkCount"`
	CategoryMetrics     []CategoryMetric `json:"categoryMetrics" yaml:"categoryMetrics"`
	Issues              []Issue          `json:"issues" yaml:"issues"`
}

type CategoryMetric struct {
	Name     string `json:"name" yaml:"name"`
	Score    int    `json:"score" yaml:"score"`
	MaxScore int    `json:"maxScore" yaml:"maxScore"`
	Status   Status `json:"status" yaml:"status"`
	Details  string `json:"details" yaml:"details"`
}

type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// IssueMessages returns the issue texts in report order.
func (r *AnalysisReport) IssueMessages() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Message)
	}
	return out
}

// Metric looks up a category metric by name.
func (r *AnalysisReport) Metric(name string) (CategoryMetric, bool) {
	for _, m := range r.CategoryMetrics {
		if m.Name == name {
			return m, true
		}
	}
	return CategoryMetric{}, false
}

type Recommendation struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	CodeSnippet string `json:"codeSnippet,omitempty" yaml:"codeSnippet,omitempty"`
	Impact      Impact `json:"impact" yaml:"impact"`
}
