package synth

import (
	"regexp"
	"strings"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/lang"
)

// DefaultMinLastWords is the shortest final sentence kept after generation.
const DefaultMinLastWords = 5

// SentenceBudget maps a trend count to the maximum summary length.
type SentenceBudget func(trends int) int

// FixedBudget always allows n sentences.
func FixedBudget(n int) SentenceBudget {
	return func(int) int { return n }
}

// TrendBudget allows one sentence per trend plus extra.
func TrendBudget(extra int) SentenceBudget {
	return func(trends int) int { return trends + extra }
}

// StripEcho removes the prompt when the model repeats it as a prefix.
func StripEcho(out, prompt string) string {
	out = strings.TrimSpace(out)
	if prompt != "" && strings.HasPrefix(out, prompt) {
		return strings.TrimSpace(out[len(prompt):])
	}
	return out
}

// StripForbidden deletes every match of the patterns.
func StripForbidden(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// Sentences splits text on terminal punctuation, keeping the terminators.
func Sentences(text string) []string {
	return ingest.SplitSentences(text)
}

// LimitSentences keeps the first max sentences; max <= 0 keeps all.
func LimitSentences(sentences []string, max int) []string {
	if max > 0 && len(sentences) > max {
		return sentences[:max]
	}
	return sentences
}

// DropIncompleteEnding removes the last sentence when it is shorter than
// minWords or ends on a truncation cue of the language.
func DropIncompleteEnding(sentences []string, minWords int, profile *lang.Profile) []string {
	if len(sentences) == 0 {
		return sentences
	}
	last := sentences[len(sentences)-1]
	if ingest.WordCount(last) < minWords || (profile != nil && profile.IsTruncated(last)) {
		return sentences[:len(sentences)-1]
	}
	return sentences
}

// EnsureTerminal appends a full stop when text does not end with terminal
// punctuation.
func EnsureTerminal(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!") || strings.HasSuffix(text, "?") {
		return text
	}
	return text + "."
}

// Clean runs the repair steps in order: echo, forbidden patterns, sentence
// limit, incomplete ending, terminal punctuation. It returns the paragraph
// and the number of sentences kept.
func Clean(raw, prompt string, maxSentences, minLastWords int, profile *lang.Profile) (string, int) {
	text := StripEcho(raw, prompt)
	if profile != nil {
		text = StripForbidden(text, profile.Forbidden)
	}
	// A paragraph never spans lines.
	text = strings.Join(strings.Fields(text), " ")

	sentences := LimitSentences(Sentences(text), maxSentences)
	sentences = DropIncompleteEnding(sentences, minLastWords, profile)
	for i, s := range sentences {
		sentences[i] = EnsureTerminal(s)
	}
	return strings.Join(sentences, " "), len(sentences)
}
