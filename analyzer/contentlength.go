package analyzer

import (
	"fmt"

	"github.com/seo-optimizer/contentquality/textanalyzer"
)

// ContentLength scores the number of words in the extracted text. It is
// always applicable: a page without content simply has zero words.
func ContentLength(text string, t ContentLengthThresholds) MetricScore {
	words := textanalyzer.CountWords(text)

	var score float64
	switch {
	case words >= t.Best:
		score = 1
	case words >= t.Min:
		score = 0.5 + float64(words-t.Min)/float64(t.Best-t.Min)*0.4
	case t.Min > 0:
		score = float64(words) / float64(t.Min) * 0.5
	}

	result := newScore(ContentLengthID, float(score))
	switch {
	case words >= t.Best:
		result.DisplayValue = fmt.Sprintf("Your page has %d words (Great!)", words)
	case words >= t.Min:
		result.DisplayValue = fmt.Sprintf("Your page has %d words (OK)", words)
	default:
		result.DisplayValue = fmt.Sprintf("Your page has only %d words (Not enough)", words)
		result.Explanation = fmt.Sprintf("Add more content, aim for at least %d words", t.Min)
	}

	result.NumericValue = float(float64(words))
	result.NumericUnit = "words"
	result.Details = []DetailRow{
		{Key: "word-count", Text: fmt.Sprintf("%d words", words)},
	}
	return result
}
