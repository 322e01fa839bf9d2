package analyzer

import "fmt"

// AnalyzeHeadings walks the headings in document order and records every
// forward jump of more than one level. Going back to a shallower level is
// never a problem, and the first heading has nothing to skip from.
func AnalyzeHeadings(headings []HeadingElement) HeadingAnalysis {
	analysis := HeadingAnalysis{
		InOrder: true,
		Skipped: make([]SkippedLevel, 0),
		Counts:  make([]HeadingCount, 0),
	}

	countIndex := make(map[int]int)
	lastLevel := 0
	for _, heading := range headings {
		level := heading.HeadingLevel()
		if level == 0 {
			continue
		}
		analysis.Total++

		if i, ok := countIndex[level]; ok {
			analysis.Counts[i].Count++
		} else {
			countIndex[level] = len(analysis.Counts)
			analysis.Counts = append(analysis.Counts, HeadingCount{Tag: fmt.Sprintf("H%d", level), Count: 1})
		}

		if level == 1 {
			analysis.H1Count++
		}

		if level > lastLevel+1 && lastLevel > 0 {
			analysis.InOrder = false
			analysis.Skipped = append(analysis.Skipped, SkippedLevel{From: lastLevel, To: level})
		}
		lastLevel = level
	}

	analysis.HasH1 = analysis.H1Count > 0
	return analysis
}
