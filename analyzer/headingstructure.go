package analyzer

import (
	"fmt"
	"strings"
)

const (
	missingH1Penalty    = 4
	multipleH1Penalty   = 2
	skippedLevelPenalty = 3
)

// HeadingCheck scores the heading outline. A page without headings scores
// zero rather than being skipped.
func HeadingCheck(headings []HeadingElement) MetricScore {
	analysis := AnalyzeHeadings(headings)
	if analysis.Total == 0 {
		result := newScore(HeadingCheckID, float(0))
		result.DisplayValue = "No headings found"
		result.Explanation = "No headings found on page"
		return result
	}

	points := 10
	problems := make([]string, 0, 3)
	if !analysis.HasH1 {
		points -= missingH1Penalty
		problems = append(problems, "Missing H1 heading")
	}
	if analysis.H1Count > 1 {
		points -= multipleH1Penalty
		problems = append(problems, fmt.Sprintf("%d H1 headings (should be 1)", analysis.H1Count))
	}
	if !analysis.InOrder {
		points -= skippedLevelPenalty
		problems = append(problems, "Skipped heading levels")
	}

	result := newScore(HeadingCheckID, float(tenths(points)))
	if len(problems) > 0 {
		result.DisplayValue = "Problems: " + strings.Join(problems, ", ")
	} else {
		result.DisplayValue = fmt.Sprintf("Good heading structure with %d headings", analysis.Total)
	}

	if len(analysis.Skipped) > 0 {
		jumps := make([]string, 0, len(analysis.Skipped))
		for _, skip := range analysis.Skipped {
			jumps = append(jumps, fmt.Sprintf("H%d to H%d", skip.From, skip.To))
		}
		result.Explanation = "Heading levels skipped: " + strings.Join(jumps, ", ")
	}

	result.NumericValue = float(float64(analysis.Total))
	result.NumericUnit = "headings"
	for _, count := range analysis.Counts {
		plural := "s"
		if count.Count == 1 {
			plural = ""
		}
		result.Details = append(result.Details, DetailRow{
			Key:  strings.ToLower(count.Tag),
			Text: fmt.Sprintf("%d %s heading%s", count.Count, count.Tag, plural),
		})
	}
	return result
}
