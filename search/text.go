package search

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	termPattern    = regexp.MustCompile(`[가-힣a-zA-Z0-9]{2,}`)
)

// CleanText strips markup, turns every rune that is not a letter, digit,
// underscore or space into a space and collapses whitespace.
func CleanText(text string) string {
	text = stripTags(text)
	text = nonWordPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize returns the Hangul/ASCII alphanumeric runs of at least two runes.
func Tokenize(text string) []string {
	return termPattern.FindAllString(text, -1)
}

// SplitKeywords splits raw search input on whitespace.
func SplitKeywords(raw string) []string {
	return strings.Fields(raw)
}

func stripTags(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	z := html.NewTokenizer(strings.NewReader(text))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
