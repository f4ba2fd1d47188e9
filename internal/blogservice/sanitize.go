package blogservice

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	excerptLength  = 150
	wordsPerMinute = 200
)

var markupTagRX = regexp.MustCompile(`<[^>]*>`)

func stripMarkup(content string) string {
	return markupTagRX.ReplaceAllString(content, "")
}

// excerpt returns the plain-text preview of content, cut at excerptLength characters.
func excerpt(content string) string {
	plain := stripMarkup(content)
	if utf8.RuneCountInString(plain) <= excerptLength {
		return plain
	}

	runes := []rune(plain)
	return strings.TrimRightFunc(string(runes[:excerptLength]), unicode.IsSpace) + "..."
}

// readTime estimates reading minutes from the whitespace-separated word count. Markup is counted.
func readTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
