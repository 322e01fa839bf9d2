package analyzer

import (
	"fmt"

	"github.com/seo-optimizer/contentquality/textanalyzer"
)

// ReadingLevel scores the Flesch reading ease of the extracted text. Ease
// between IdealMin and IdealMax is best; simpler text loses a little, harder
// text loses more the harder it gets.
func ReadingLevel(text string, t ReadabilityThresholds) MetricScore {
	if textanalyzer.TextLength(text) < t.MinTextLength {
		return notApplicable(ReadingLevelID, "Not enough text to check")
	}

	level := textanalyzer.CheckReadingLevel(text)
	if level.EaseScore == nil {
		result := notApplicable(ReadingLevelID, "Could not compute reading level")
		result.ErrorMessage = "reading level computation failed"
		return result
	}
	ease := *level.EaseScore

	result := newScore(ReadingLevelID, float(EaseScore(ease, t)))

	gradeText := "Unknown"
	if level.GradeLevel != nil {
		gradeText = fmt.Sprintf("%.1f", *level.GradeLevel)
	}
	label := ReadingLabel(ease)

	result.DisplayValue = fmt.Sprintf("Reading level: %s (Grade %s)", label, gradeText)
	switch {
	case ease > t.IdealMax:
		result.Explanation = "Text may be too simple for the topic"
	case ease < t.IdealMin:
		result.Explanation = "Use shorter sentences and simpler words"
	}
	result.NumericValue = float(ease)
	result.NumericUnit = "reading score"
	result.Details = []DetailRow{
		{Key: "easy-to-read-score", Text: fmt.Sprintf("%.1f (%s)", ease, label)},
		{Key: "grade-level", Text: "Grade " + gradeText},
	}
	return result
}

// EaseScore maps a reading-ease value onto the score bands.
func EaseScore(ease float64, t ReadabilityThresholds) float64 {
	switch {
	case ease >= t.IdealMin && ease <= t.IdealMax:
		return 1
	case ease > t.IdealMax:
		return 0.9
	case ease >= t.FairlyHard:
		return 0.8
	case ease >= t.Hard:
		return 0.6
	case ease >= t.VeryHard:
		return 0.4
	default:
		return 0.2
	}
}

// ReadingLabel names the conventional Flesch band of a reading-ease value.
func ReadingLabel(ease float64) string {
	switch {
	case ease >= 90:
		return "Very Easy"
	case ease >= 80:
		return "Easy"
	case ease >= 70:
		return "Fairly Easy"
	case ease >= 60:
		return "Standard"
	case ease >= 50:
		return "Fairly Hard"
	case ease >= 30:
		return "Hard"
	default:
		return "Very Hard"
	}
}
