package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/seo-ai/pkg/metrics"
	"github.com/helmcode/seo-ai/pkg/model"
)

const barWidth = 40

// Output is what the CLI prints: the report plus recommendations when the
// premium view was requested.
type Output struct {
	Report          *model.AnalysisReport  `json:"report" yaml:"report"`
	Recommendations []model.Recommendation `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// DisplayResults writes the report to w in the requested format. Recommendations
// are only shown for the premium view.
func DisplayResults(w io.Writer, report *model.AnalysisReport, recs []model.Recommendation, premium bool, format string) error {
	out := Output{Report: report}
	if premium {
		out.Recommendations = recs
	}
	switch format {
	case "json":
		return displayJSON(w, out)
	case "yaml":
		return displayYAML(w, out)
	case "human":
		fallthrough
	default:
		displayHuman(w, metrics.Build(report, premium, recs))
	}
	return nil
}

func displayJSON(w io.Writer, out Output) error {
	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, out Output) error {
	output, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, d *metrics.Dashboard) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "📈 SEO ANALYSIS REPORT")
	fmt.Fprintf(w, "   %s\n", d.URL)
	fmt.Fprintf(w, "   Last updated: %s\n\n", color.HiBlackString(d.UpdatedAt.Local().Format("15:04:05")))

	// Gauge
	bandColor := getBandColor(d.Gauge.Band)
	bandColor.Fprintf(w, "🎯 SEO SCORE: %d/100\n", d.Gauge.Score)
	fmt.Fprintf(w, "   %s\n", renderBar(d.Gauge.Score, 100, bandColor))
	fmt.Fprintf(w, "   %s\n\n", d.Verdict)

	// Quick stats
	white.Fprintln(w, "⚡ QUICK STATS:")
	fmt.Fprintf(w, "   Loading speed:   %.1fs\n", d.Stats.LoadingSpeedSeconds)
	if d.Stats.IsMobileFriendly {
		fmt.Fprintf(w, "   Mobile friendly: %s\n", color.GreenString("Yes"))
	} else {
		fmt.Fprintf(w, "   Mobile friendly: %s\n", color.RedString("No"))
	}
	fmt.Fprintf(w, "   Backlinks:       %s\n\n", groupThousands(d.Stats.BacklinkCount))

	// Category chart
	white.Fprintln(w, "📊 CATEGORY PERFORMANCE:")
	for _, bar := range d.Bars {
		c := color.New(color.FgRed)
		if bar.Highlight {
			c = color.New(color.FgBlue)
		}
		fmt.Fprintf(w, "   %-15s %s %3d %s\n", bar.Name, renderBar(bar.Score, bar.MaxScore, c), bar.Score, getStatusIcon(bar.Status))
	}
	fmt.Fprintln(w)

	// Issues
	if len(d.Issues) > 0 {
		yellow.Fprintln(w, "⚠️  IDENTIFIED ISSUES:")
		for i, issue := range d.Issues {
			fmt.Fprintf(w, "   %d. %s %s\n", i+1, getSeverityIcon(issue.Severity), issue.Message)
			fmt.Fprintf(w, "      Priority: %s\n", strings.ToUpper(string(issue.Severity)))
		}
		fmt.Fprintln(w)
	}

	if d.Locked {
		displayUpsell(w)
	} else {
		displayRecommendations(w, d.Recommendations)
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func displayUpsell(w io.Writer) {
	magenta := color.New(color.FgMagenta, color.Bold)
	magenta.Fprintln(w, "🔒 UNLOCK PREMIUM AI INSIGHTS")
	fmt.Fprintln(w, wrapText("Get actionable, AI-generated code snippets and strategy tailored to this specific site. Run again with --premium to unlock.", 80, "   "))
	fmt.Fprintln(w)
}

func displayRecommendations(w io.Writer, recs []model.Recommendation) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintln(w, "💡 AI RECOMMENDATIONS:")
	if len(recs) == 0 {
		fmt.Fprintf(w, "   %s\n\n", color.HiBlackString("No recommendations returned."))
		return
	}
	for i, rec := range recs {
		fmt.Fprintf(w, "   %d. %s %s %s\n", i+1, getImpactIcon(rec.Impact), rec.Title, getImpactColor(rec.Impact).Sprintf("[%s IMPACT]", strings.ToUpper(string(rec.Impact))))
		fmt.Fprintln(w, wrapText(rec.Description, 80, "      "))
		if rec.CodeSnippet != "" {
			for _, line := range strings.Split(strings.TrimRight(rec.CodeSnippet, "\n"), "\n") {
				fmt.Fprintf(w, "      %s\n", color.CyanString(line))
			}
		}
		fmt.Fprintln(w)
	}
}

func renderBar(score, max int, c *color.Color) string {
	if max <= 0 {
		max = 100
	}
	filled := score * barWidth / max
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return c.Sprint(strings.Repeat("█", filled)) + color.HiBlackString(strings.Repeat("░", barWidth-filled))
}

func getBandColor(band metrics.Band) *color.Color {
	switch band {
	case metrics.BandExcellent:
		return color.New(color.FgBlue, color.Bold)
	case metrics.BandFair:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func getStatusIcon(status model.Status) string {
	switch status {
	case model.StatusGood:
		return "🟢"
	case model.StatusWarning:
		return "🟡"
	case model.StatusCritical:
		return "🔴"
	default:
		return "⚪"
	}
}

func getSeverityIcon(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "🟠"
	case model.SeverityMedium:
		return "🟡"
	case model.SeverityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func getImpactIcon(impact model.Impact) string {
	switch impact {
	case model.ImpactHigh:
		return "⚡"
	case model.ImpactMedium:
		return "🔹"
	case model.ImpactLow:
		return "▫️"
	default:
		return "•"
	}
}

func getImpactColor(impact model.Impact) *color.Color {
	if impact == model.ImpactHigh {
		return color.New(color.FgRed)
	}
	return color.New(color.FgBlue)
}

// groupThousands renders n with comma separators.
func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
