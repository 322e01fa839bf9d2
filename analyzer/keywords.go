package analyzer

import (
	"fmt"
	"strings"

	"github.com/seo-optimizer/contentquality/textanalyzer"
)

const (
	titleMatchPoints  = 6
	goodDensityPoints = 3
	enoughWordsPoints = 1
)

// KeywordCheck checks that the page's most frequent words include words from
// its title and that the leading word is neither rare nor stuffed.
func KeywordCheck(text, title, metaDescription string, t KeywordThresholds) MetricScore {
	if textanalyzer.TextLength(text) < t.MinTextLength {
		return notApplicable(KeywordCheckID, "Not enough text to check keywords")
	}

	words := textanalyzer.CheckTopWords(text)
	titleWordsFound := textanalyzer.FindTitleWords(textanalyzer.TitleWords(title), words.TopWords)

	goodWordUse := false
	if len(words.TopWords) > 0 {
		pct := words.TopWords[0].Percent
		goodWordUse = pct >= t.DensityMin && pct <= t.DensityMax
	}

	points := 0
	if len(titleWordsFound) > 0 {
		points += titleMatchPoints
	}
	if goodWordUse {
		points += goodDensityPoints
	}
	if words.TotalWords >= t.MinTotalWords {
		points += enoughWordsPoints
	}

	result := newScore(KeywordCheckID, float(tenths(points)))

	result.DisplayValue = fmt.Sprintf("Found %d important words", len(words.TopWords))
	if len(titleWordsFound) > 0 {
		result.DisplayValue += fmt.Sprintf(", %d from title", len(titleWordsFound))
	} else {
		result.Explanation = "None of the title words are among the most used words on the page"
	}

	topWordsText := make([]string, 0, len(words.TopWords))
	for _, word := range words.TopWords {
		topWordsText = append(topWordsText, word.String())
	}

	result.Details = []DetailRow{
		{Key: "top-words", Text: orDefault(strings.Join(topWordsText, ", "), "No important words found")},
		{Key: "title-words-found", Text: orDefault(strings.Join(titleWordsFound, ", "), "No title words found in content")},
	}
	if metaDescription != "" {
		inMeta := metaDescriptionWords(metaDescription, words.TopWords)
		result.Details = append(result.Details, DetailRow{
			Key:  "meta-description-words-found",
			Text: orDefault(strings.Join(inMeta, ", "), "No important words found in meta description"),
		})
	}
	return result
}

// metaDescriptionWords returns the top words that also occur in the meta
// description, in rank order.
func metaDescriptionWords(description string, topWords []textanalyzer.TopWord) []string {
	described := textanalyzer.CheckTopWords(description)
	found := make([]string, 0)
	for _, word := range topWords {
		if described.Count(word.Word) > 0 {
			found = append(found, word.Word)
		}
	}
	return found
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
