package textanalyzer

import (
	"fmt"
	"math/big"
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Tokens this short are counted in the total but never ranked.
	maxIgnoredWordLen = 2
	topWordsLimit     = 10
)

var (
	wordToken = regexp.MustCompile(`\w+`)
	titleWord = regexp.MustCompile(`\b[a-z]{4,}\b`)
)

// WordCount is a single entry of the frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWord is a ranked content word with its share of all tokens.
type TopWord struct {
	Word        string  `json:"word"`
	Count       int     `json:"count"`
	Percent     float64 `json:"percent"`
	PercentText string  `json:"percentText"`
}

// WordStats is the result of CheckTopWords.
type WordStats struct {
	TotalWords int         `json:"totalWords"`
	Frequency  []WordCount `json:"frequency"`
	TopWords   []TopWord   `json:"topWords"`
}

// Count returns how often word occurs in the frequency table.
func (w WordStats) Count(word string) int {
	for _, entry := range w.Frequency {
		if entry.Word == word {
			return entry.Count
		}
	}
	return 0
}

// CheckTopWords tokenizes text and ranks its most frequent content words.
// Frequency keeps first-encounter order, which is also the tie-break for
// TopWords.
func CheckTopWords(text string) WordStats {
	tokens := wordToken.FindAllString(lower(text), -1)
	if len(tokens) == 0 {
		return WordStats{}
	}

	index := make(map[string]int)
	frequency := make([]WordCount, 0)
	for _, token := range tokens {
		if len(token) <= maxIgnoredWordLen {
			continue
		}
		if i, ok := index[token]; ok {
			frequency[i].Count++
			continue
		}
		index[token] = len(frequency)
		frequency = append(frequency, WordCount{Word: token, Count: 1})
	}

	ranked := make([]WordCount, len(frequency))
	copy(ranked, frequency)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topWordsLimit {
		ranked = ranked[:topWordsLimit]
	}

	total := len(tokens)
	topWords := make([]TopWord, 0, len(ranked))
	for _, entry := range ranked {
		percentText := twoDecimals(float64(entry.Count) / float64(total) * 100)
		// Percent is read back from its two-decimal form so that range checks
		// agree with what the report shows.
		percent, _ := strconv.ParseFloat(percentText, 64)
		topWords = append(topWords, TopWord{
			Word:        entry.Word,
			Count:       entry.Count,
			Percent:     percent,
			PercentText: percentText + "%",
		})
	}

	return WordStats{
		TotalWords: total,
		Frequency:  frequency,
		TopWords:   topWords,
	}
}

// TitleWords returns the lowercase words of at least four letters in title,
// in order of appearance.
func TitleWords(title string) []string {
	return titleWord.FindAllString(lower(title), -1)
}

// FindTitleWords returns the title words that exactly equal one of the top words.
func FindTitleWords(titleWords []string, topWords []TopWord) []string {
	found := make([]string, 0)
	for _, word := range titleWords {
		for _, top := range topWords {
			if top.Word == word {
				found = append(found, word)
				break
			}
		}
	}
	return found
}

// String renders a top word the way the keyword report lists it.
func (t TopWord) String() string {
	return fmt.Sprintf("%s (%d times, %s)", t.Word, t.Count, t.PercentText)
}

// twoDecimals formats a non-negative x with two decimals, rounding exact
// halves up (0.125 -> "0.13"). strconv rounds those to even.
func twoDecimals(x float64) string {
	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	scaled.Mul(scaled, big.NewFloat(100))
	scaled.Add(scaled, big.NewFloat(0.5))
	// truncation is floor for non-negative values
	n, _ := scaled.Int(nil)
	hundredths := n.Int64()
	return fmt.Sprintf("%d.%02d", hundredths/100, hundredths%100)
}

// lower case-folds s. A Caser keeps state, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
