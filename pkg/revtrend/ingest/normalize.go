package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text and removes every character that is neither a
// word character, whitespace nor an apostrophe. Accented letters are kept.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}

	// Dropping characters can leave a base letter next to a combining mark.
	return strings.TrimSpace(norm.NFC.String(b.String()))
}

// NormalizeAll applies Normalize to each text.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}

func keepRune(r rune) bool {
	switch {
	case r == '\'' || r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
		return true
	case unicode.IsSpace(r):
		return true
	}
	return false
}
