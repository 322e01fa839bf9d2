package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/seo-optimizer/contentquality/analyzer"
)

// MarkdownWriter outputs reports in Markdown format for sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *analyzer.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeGroups(md, report)
	w.writeRecommendations(md, report)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *analyzer.Report) {
	md.H1(report.Category.Title + " Report")
	md.PlainText("")

	url := report.URL
	if url == "" {
		url = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Page", url},
			{"Score", formatScore(report.Score)},
			{"Audits", summarize(report.Audits)},
		},
	})
	md.PlainText("")

	switch {
	case report.Score == nil:
		md.Note("No audit applied to this page.")
	case len(report.Recommendations) == 0:
		md.Tip("Every applicable audit passed.")
	default:
		md.Warningf("%d audit(s) need attention.", len(report.Recommendations))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, report *analyzer.Report) {
	grouped := auditsByGroup(report)
	for _, group := range report.Groups {
		audits := grouped[group.ID]
		if len(audits) == 0 {
			continue
		}

		md.H2(group.Title)
		md.PlainText("")

		rows := make([][]string, 0, len(audits))
		for _, audit := range audits {
			rows = append(rows, []string{audit.Title, formatScore(audit.Score), status(audit), orDash(audit.DisplayValue)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Audit", "Score", "Status", "Result"},
			Rows:   rows,
		})
		md.PlainText("")

		for _, audit := range audits {
			if audit.Explanation == "" && len(audit.Details) == 0 {
				continue
			}
			md.H3(audit.Title)
			md.PlainText("")
			if audit.Explanation != "" {
				md.PlainText(audit.Explanation)
				md.PlainText("")
			}
			if len(audit.Details) > 0 {
				items := make([]string, 0, len(audit.Details))
				for _, row := range audit.Details {
					items = append(items, "**"+row.Key+"**: "+row.Text)
				}
				md.BulletList(items...)
				md.PlainText("")
			}
		}
	}
}

func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *analyzer.Report) {
	md.H2("Recommendations")
	md.PlainText("")
	if len(report.Recommendations) == 0 {
		md.PlainText("No recommendations.")
		return
	}
	md.BulletList(report.Recommendations...)
}

func summarize(audits []analyzer.MetricScore) string {
	counts := map[string]int{}
	for _, audit := range audits {
		counts[status(audit)]++
	}
	parts := make([]string, 0, 3)
	for _, s := range []string{"pass", "fail", "skipped"} {
		if counts[s] > 0 {
			parts = append(parts, strconv.Itoa(counts[s])+" "+s)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
