package textanalyzer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// ErrNoWords is returned by Flesch when the text contains no alphabetic word.
var ErrNoWords = errors.New("text contains no words")

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// ReadingLevel holds the reading-ease index and grade estimate of a text.
// Both fields are nil when they could not be computed.
type ReadingLevel struct {
	EaseScore  *float64 `json:"easeScore"`
	GradeLevel *float64 `json:"gradeLevel"`
}

// FleschResult contains the raw counts and both Flesch formulas.
type FleschResult struct {
	Words       int     `json:"words"`
	Sentences   int     `json:"sentences"`
	Syllables   int     `json:"syllables"`
	ReadingEase float64 `json:"readingEase"`
	GradeLevel  float64 `json:"gradeLevel"`
}

// CheckReadingLevel computes the Flesch reading ease and Flesch-Kincaid
// grade of text. It never fails: any error in the computation is logged and
// reported as an empty ReadingLevel.
func CheckReadingLevel(text string) (level ReadingLevel) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("Reading level computation panicked")
			level = ReadingLevel{}
		}
	}()

	result, err := Flesch(text)
	if err != nil {
		log.Warn().Err(err).Int("length", TextLength(text)).Msg("Could not check reading level")
		return ReadingLevel{}
	}

	ease, grade := result.ReadingEase, result.GradeLevel
	if !isFinite(ease) || !isFinite(grade) {
		log.Warn().Int("length", TextLength(text)).Msg("Reading level is not a finite number")
		return ReadingLevel{}
	}

	log.Debug().
		Int("words", result.Words).
		Int("sentences", result.Sentences).
		Float64("reading_ease", ease).
		Float64("grade_level", grade).
		Msg("Reading level computed")

	return ReadingLevel{EaseScore: &ease, GradeLevel: &grade}
}

// Flesch applies the Flesch reading ease and Flesch-Kincaid grade formulas.
// Syllables are estimated with a vowel-group heuristic, so results may differ
// slightly from other implementations.
func Flesch(text string) (FleschResult, error) {
	words := countReadableWords(text)
	if words == 0 {
		return FleschResult{}, ErrNoWords
	}

	sentences := 0
	for _, segment := range sentenceEnd.Split(text, -1) {
		if countReadableWords(segment) > 0 {
			sentences++
		}
	}
	if sentences == 0 {
		return FleschResult{}, fmt.Errorf("no sentences in %d words", words)
	}

	syllables := 0
	for _, word := range strings.Fields(text) {
		if clean := cleanWord(word); clean != "" {
			syllables += countSyllables(clean)
		}
	}

	asl := float64(words) / float64(sentences)
	asw := float64(syllables) / float64(words)

	return FleschResult{
		Words:       words,
		Sentences:   sentences,
		Syllables:   syllables,
		ReadingEase: 206.835 - 1.015*asl - 84.6*asw,
		GradeLevel:  0.39*asl + 11.8*asw - 15.59,
	}, nil
}

func countReadableWords(text string) int {
	count := 0
	for _, word := range strings.Fields(text) {
		if cleanWord(word) != "" {
			count++
		}
	}
	return count
}

// cleanWord keeps the letters of word, lowercased.
func cleanWord(word string) string {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func countSyllables(word string) int {
	const vowels = "aeiouy"

	groups := 0
	prevWasVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevWasVowel {
			groups++
		}
		prevWasVowel = isVowel
	}

	// Silent trailing e, except consonant+le ("table", "simple")
	if strings.HasSuffix(word, "e") && groups > 1 {
		if !(strings.HasSuffix(word, "le") && len(word) > 2 && !strings.ContainsRune(vowels, rune(word[len(word)-3]))) {
			groups--
		}
	}

	if groups < 1 {
		groups = 1
	}
	return groups
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
