package ingest

import (
	"strings"
	"unicode"
)

// Stoplist is the read side of a stopword set.
type Stoplist interface {
	IsStop(token string) bool
}

// Tokenizer handles text tokenization for phrase extraction
type Tokenizer struct {
	stops Stoplist
}

// NewTokenizer creates a tokenizer; stops may be nil.
func NewTokenizer(stops Stoplist) *Tokenizer {
	return &Tokenizer{stops: stops}
}

// Words splits text into lowercase word tokens, keeping order and stopwords.
// Apostrophes and hyphens separate words, so "l'accueil" yields "l" and
// "accueil".
func (t *Tokenizer) Words(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()

	return words
}

// Tokenize returns the content words of text: stopwords, single letters and
// pure numbers are removed.
func (t *Tokenizer) Tokenize(text string) []string {
	words := t.Words(text)
	out := words[:0]
	for _, w := range words {
		if t.IsContent(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsContent reports whether a lowercase word carries meaning on its own.
func (t *Tokenizer) IsContent(word string) bool {
	if len([]rune(word)) <= 1 {
		return false
	}
	if isNumericOnly(word) {
		return false
	}
	return !t.IsStop(word)
}

// IsStop reports whether word is in the configured stoplist.
func (t *Tokenizer) IsStop(word string) bool {
	if t.stops == nil {
		return false
	}
	return t.stops.IsStop(word)
}

// isNumericOnly returns true if the token contains only digits.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Fields splits already normalized text on whitespace. It is the token view
// used for exact phrase matching.
func Fields(text string) []string {
	return strings.Fields(text)
}

// WordCount returns the number of whitespace separated words in phrase.
func WordCount(phrase string) int {
	return len(strings.Fields(phrase))
}
