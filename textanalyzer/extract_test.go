package textanalyzer_test

import (
	"strings"
	"testing"

	"github.com/seo-optimizer/contentquality/textanalyzer"
	"github.com/stretchr/testify/assert"
)

func TestGetMainText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"empty input", "", ""},
		{"plain text", "  hello   world  ", "hello world"},
		{"tags become spaces", "<p>one</p><p>two</p>", "one two"},
		{"script removed", "<p>a</p><script>var x = 1 < 2;</script><p>b</p>", "a b"},
		{"script case-insensitive and multiline", "a<SCRIPT type=\"x\">\nif (a<b) {\n}\n</ScRiPt>b", "a b"},
		{"style removed", "<style>p > a { color: red }</style>text", "text"},
		{"entities kept literal", "<p>fish &amp; chips</p>", "fish &amp; chips"},
		{"stray less-than swallows to next tag end", "a < b <i>c</i>", "a c"},
		{"unmatched brackets dropped", "1 > 0 and 2 <", "1 0 and 2"},
		{"newlines and tabs collapsed", "<div>\n\tline one\n\n\tline two\n</div>", "line one line two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textanalyzer.GetMainText(tt.html))
		})
	}
}

func TestGetMainText_Invariants(t *testing.T) {
	inputs := []string{
		"<html><head><title>x</title></head><body><h1>Hi</h1>\n<p>there</p></body></html>",
		"<script>document.write('<b>')</script>  <<>> text >< ",
		"<style>a{}</style><style>b{}",
		"no markup at all\t\t",
		"<",
		"<>",
	}

	for _, in := range inputs {
		out := textanalyzer.GetMainText(in)
		assert.NotContains(t, out, "<")
		assert.NotContains(t, out, ">")
		assert.NotContains(t, out, "  ")
		assert.Equal(t, strings.TrimSpace(out), out)
		assert.LessOrEqual(t, len(out), len(in))
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, textanalyzer.CountWords(""))
	assert.Equal(t, 0, textanalyzer.CountWords("   \n\t"))
	assert.Equal(t, 4, textanalyzer.CountWords(" the quick\nbrown  fox "))
}

func TestTextLength(t *testing.T) {
	assert.Equal(t, 0, textanalyzer.TextLength(""))
	assert.Equal(t, 5, textanalyzer.TextLength("hello"))
	assert.Equal(t, 4, textanalyzer.TextLength("раму"))
	assert.Equal(t, 3, textanalyzer.TextLength("日本語"))
}
