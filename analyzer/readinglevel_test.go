package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingLevel_NotApplicableForShortText(t *testing.T) {
	result := ReadingLevel(strings.Repeat("a", 199), DefaultThresholds().Readability)

	assert.True(t, result.NotApplicable)
	assert.Nil(t, result.Score)
	assert.Equal(t, "Not enough text to check", result.Explanation)
	assert.Empty(t, result.ErrorMessage)
}

func TestReadingLevel_ComputationFailure(t *testing.T) {
	result := ReadingLevel(strings.Repeat("1234 ", 60), DefaultThresholds().Readability)

	assert.True(t, result.NotApplicable)
	assert.Nil(t, result.Score)
	assert.Equal(t, "Could not compute reading level", result.Explanation)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestReadingLevel_SimpleText(t *testing.T) {
	result := ReadingLevel(strings.Repeat("The cat sat on the mat. ", 10), DefaultThresholds().Readability)

	require.NotNil(t, result.Score)
	assert.Equal(t, 0.9, *result.Score)
	assert.Contains(t, result.DisplayValue, "Reading level: Very Easy (Grade ")
	assert.Equal(t, "reading score", result.NumericUnit)
	require.Len(t, result.Details, 2)
	assert.Equal(t, "easy-to-read-score", result.Details[0].Key)
	assert.Contains(t, result.Details[0].Text, "(Very Easy)")
	assert.Equal(t, "grade-level", result.Details[1].Key)
	assert.Equal(t, "Text is easy to read", result.Title)
}

func TestEaseScore_Bands(t *testing.T) {
	th := DefaultThresholds().Readability
	tests := []struct {
		ease float64
		want float64
	}{
		{100, 0.9},
		{80.01, 0.9},
		{80, 1},
		{70, 1},
		{60, 1},
		{59.99, 0.8},
		{50, 0.8},
		{49.9, 0.6},
		{40, 0.6},
		{39.9, 0.4},
		{30, 0.4},
		{29.9, 0.2},
		{-20, 0.2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EaseScore(tt.ease, th), "ease=%v", tt.ease)
	}
}

func TestReadingLabel(t *testing.T) {
	tests := map[float64]string{
		95:  "Very Easy",
		90:  "Very Easy",
		85:  "Easy",
		75:  "Fairly Easy",
		65:  "Standard",
		55:  "Fairly Hard",
		35:  "Hard",
		10:  "Very Hard",
		-50: "Very Hard",
	}

	for ease, want := range tests {
		assert.Equal(t, want, ReadingLabel(ease), "ease=%v", ease)
	}
}
