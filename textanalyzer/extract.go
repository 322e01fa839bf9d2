package textanalyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	scriptBlock = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleBlock  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	markupTag   = regexp.MustCompile(`<[^>]+>`)
)

// GetMainText strips scripts, styles and tags from page markup and returns
// whitespace-collapsed plain text. HTML entities are left as they are.
func GetMainText(html string) string {
	if html == "" {
		return ""
	}

	content := scriptBlock.ReplaceAllString(html, "")
	content = styleBlock.ReplaceAllString(content, "")
	content = markupTag.ReplaceAllString(content, " ")

	// A '<' or '>' without a partner never forms a tag, drop it as well
	content = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return ' '
		}
		return r
	}, content)

	return strings.Join(strings.Fields(content), " ")
}

// TextLength is the length of text in characters, not bytes.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}

// CountWords returns the number of whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
