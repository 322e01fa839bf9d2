package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seo-optimizer/contentquality/analyzer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))  // gray
	groupStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// ConsoleWriter prints a colored summary for terminals.
type ConsoleWriter struct {
	baseWriter
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	return &ConsoleWriter{baseWriter: newBaseWriter(output)}
}

// Write prints the report.
func (w *ConsoleWriter) Write(report *analyzer.Report) (int, error) {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s", titleStyle.Render(report.Category.Title), scoreStyle(report.Score).Render(formatScore(report.Score)))
	if report.URL != "" {
		header += "\n" + detailStyle.Render(report.URL)
	}
	b.WriteString(summaryStyle.Render(header))
	b.WriteString("\n\n")

	grouped := auditsByGroup(report)
	for _, group := range report.Groups {
		audits := grouped[group.ID]
		if len(audits) == 0 {
			continue
		}
		b.WriteString(groupStyle.Render(group.Title))
		b.WriteString("\n")
		for _, audit := range audits {
			writeAudit(&b, audit)
		}
		b.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		b.WriteString(titleStyle.Render("Recommendations"))
		b.WriteString("\n")
		for _, rec := range report.Recommendations {
			b.WriteString("  • " + rec + "\n")
		}
	}

	return io.WriteString(w.output, b.String())
}

func writeAudit(b *strings.Builder, audit analyzer.MetricScore) {
	var symbol string
	var style lipgloss.Style
	switch status(audit) {
	case "pass":
		symbol, style = "✓", passStyle
	case "fail":
		symbol, style = "✗", failStyle
	default:
		symbol, style = "-", skipStyle
	}

	fmt.Fprintf(b, "  %s %s %s\n", style.Render(symbol), audit.Title, style.Render("("+formatScore(audit.Score)+")"))
	if audit.DisplayValue != "" {
		fmt.Fprintf(b, "      %s\n", audit.DisplayValue)
	}
	if audit.Explanation != "" {
		fmt.Fprintf(b, "      %s\n", detailStyle.Render(audit.Explanation))
	}
	for _, row := range audit.Details {
		fmt.Fprintf(b, "      %s %s\n", detailStyle.Render(row.Key+":"), row.Text)
	}
}

func scoreStyle(score *float64) lipgloss.Style {
	switch {
	case score == nil:
		return skipStyle
	case *score >= analyzer.PassThreshold:
		return passStyle
	case *score >= 0.5:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	default:
		return failStyle
	}
}
