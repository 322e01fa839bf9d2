// Package report renders content quality reports for people and tools.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/seo-optimizer/contentquality/analyzer"
)

// Writer outputs a report in one format.
type Writer interface {
	// Write renders the report and returns the number of bytes written.
	Write(report *analyzer.Report) (int, error)
}

// NewWriter returns the writer for format: console, markdown, json or yaml.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case "console", "":
		return NewConsoleWriter(output), nil
	case "markdown", "md":
		return NewMarkdownWriter(output), nil
	case "json":
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case "yaml", "yml":
		return NewYAMLWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// formatScore shows a 0..1 score as 0..100, "n/a" when absent.
func formatScore(score *float64) string {
	if score == nil {
		return "n/a"
	}
	return strconv.Itoa(int(math.Round(*score * 100)))
}

// status is the short verdict for an audit.
func status(audit analyzer.MetricScore) string {
	switch {
	case audit.NotApplicable || audit.Score == nil:
		return "skipped"
	case audit.Passed():
		return "pass"
	default:
		return "fail"
	}
}

// auditsByGroup returns the report's audits for each group, in group order.
func auditsByGroup(report *analyzer.Report) map[string][]analyzer.MetricScore {
	groupOf := make(map[string]string, len(report.Category.AuditRefs))
	for _, ref := range report.Category.AuditRefs {
		groupOf[ref.ID] = ref.Group
	}

	grouped := make(map[string][]analyzer.MetricScore)
	for _, audit := range report.Audits {
		group := groupOf[audit.ID]
		grouped[group] = append(grouped[group], audit)
	}
	return grouped
}
