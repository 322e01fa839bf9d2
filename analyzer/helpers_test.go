package analyzer

import (
	"fmt"
	"strings"
)

// fillerText returns n distinct words that never repeat.
func fillerText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("filler%04d", i)
	}
	return strings.Join(words, " ")
}

// keywordText returns total words of which count are keyword.
func keywordText(keyword string, count, total int) string {
	return strings.TrimSpace(strings.Repeat(keyword+" ", count) + fillerText(total-count))
}

func headings(tags ...string) []HeadingElement {
	elements := make([]HeadingElement, len(tags))
	for i, tag := range tags {
		elements[i] = HeadingElement{TagName: tag}
	}
	return elements
}

func visibleImages(n int) []ImageElement {
	images := make([]ImageElement, n)
	for i := range images {
		images[i] = ImageElement{Width: 320, Height: 240}
	}
	return images
}
