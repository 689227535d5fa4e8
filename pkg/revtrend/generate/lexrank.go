package generate

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ramenjuniti/lexrankmmr"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

const (
	defaultLexRankLines = 5
	minSentenceRunes    = 5
	lexrankDelimiter    = "."
)

// LexRank is an offline extractive generator: it ranks the sentences of the
// request passages with LexRank and MMR and returns the best ones as a
// paragraph. It is deterministic and ignores the decoding policy.
//
// lexrankmmr splits words with a Japanese morphological tokenizer, so
// sentences are ranked on their content words encoded as plain ASCII
// letter tokens, one per distinct word. Accents, punctuation and stopwords
// never reach the library. The selected sentences are returned verbatim.
type LexRank struct {
	tokenizer *ingest.Tokenizer
}

// NewLexRank creates the extractive generator. A nil tokenizer keeps every
// word of two or more letters.
func NewLexRank(tokenizer *ingest.Tokenizer) *LexRank {
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer(nil)
	}
	return &LexRank{tokenizer: tokenizer}
}

// Generate implements Generator.
func (l *LexRank) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var sentences, lines []string
	codes := make(map[string]string)
	for _, p := range req.Passages {
		for _, s := range ingest.SplitSentences(p) {
			s = strings.TrimSpace(strings.TrimRight(s, ".!?"))
			if utf8.RuneCountInString(s) < minSentenceRunes {
				continue
			}
			line := l.encode(s, codes)
			if line == "" {
				continue
			}
			sentences = append(sentences, s)
			lines = append(lines, line)
		}
	}
	if len(sentences) == 0 {
		return "", fmt.Errorf("lexrank: no passages: %w", internalerr.ErrEmptyGeneration)
	}

	maxLines := req.MaxSentences
	if maxLines <= 0 {
		maxLines = defaultLexRankLines
	}
	data, err := lexrankmmr.New(lexrankmmr.MaxLines(maxLines), lexrankmmr.MaxCharacters(100000))
	if err != nil {
		return "", fmt.Errorf("lexrank: init: %w", err)
	}
	if err := data.Summarize(strings.Join(lines, lexrankDelimiter) + lexrankDelimiter); err != nil {
		return "", fmt.Errorf("lexrank: summarize: %w", err)
	}

	var out []string
	for _, s := range data.LineLimitedSummary {
		if s.Id < 0 || s.Id >= len(sentences) {
			continue
		}
		out = append(out, sentenceCase(sentences[s.Id])+".")
	}
	if len(out) == 0 {
		return "", fmt.Errorf("lexrank: %w", internalerr.ErrEmptyGeneration)
	}
	return strings.Join(out, " "), nil
}

// encode maps the content words of s to letter codes shared across the
// request.
func (l *LexRank) encode(s string, codes map[string]string) string {
	words := l.tokenizer.Tokenize(s)
	if len(words) == 0 {
		return ""
	}
	out := make([]string, len(words))
	for i, w := range words {
		c, ok := codes[w]
		if !ok {
			c = letterCode(len(codes))
			codes[w] = c
		}
		out[i] = c
	}
	return strings.Join(out, " ")
}

// letterCode renders n in base 26 over a-z behind a fixed "x" prefix.
func letterCode(n int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
		if n == 0 {
			break
		}
	}
	return "x" + string(b)
}

func sentenceCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
