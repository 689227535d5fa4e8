package retrieve

import (
	"context"
	"strings"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
)

// DefaultWindow is the number of tokens kept on each side of a match.
const DefaultWindow = 10

// FindContext returns the first occurrence of phrase across texts, in
// order, with up to window tokens on each side. Matching is on normalized
// tokens, so it ignores case and punctuation.
func FindContext(phrase string, texts []string, window int) (string, bool) {
	needle := ingest.Fields(ingest.Normalize(phrase))
	for _, text := range texts {
		if snippet, ok := findIn(needle, ingest.Fields(ingest.Normalize(text)), window); ok {
			return snippet, true
		}
	}
	return "", false
}

func findIn(needle, hay []string, window int) (string, bool) {
	if len(needle) == 0 || len(needle) > len(hay) {
		return "", false
	}
	if window < 0 {
		window = 0
	}
outer:
	for i := 0; i+len(needle) <= len(hay); i++ {
		for j, tok := range needle {
			if hay[i+j] != tok {
				continue outer
			}
		}
		start := max(0, i-window)
		end := min(len(hay), i+len(needle)+window)
		return strings.Join(hay[start:end], " "), true
	}
	return "", false
}

// Exact retrieves the first exact token match with a fixed context window.
type Exact struct {
	docs   [][]string
	window int
}

// NewExact tokenizes texts once for repeated lookups.
func NewExact(texts []string, window int) *Exact {
	docs := make([][]string, 0, len(texts))
	for _, t := range texts {
		if toks := ingest.Fields(ingest.Normalize(t)); len(toks) > 0 {
			docs = append(docs, toks)
		}
	}
	return &Exact{docs: docs, window: window}
}

// Find returns the snippet around the first match, if any.
func (e *Exact) Find(phrase string) (string, bool) {
	needle := ingest.Fields(ingest.Normalize(phrase))
	for _, doc := range e.docs {
		if snippet, ok := findIn(needle, doc, e.window); ok {
			return snippet, true
		}
	}
	return "", false
}

// Retrieve implements Retriever with at most one passage.
func (e *Exact) Retrieve(ctx context.Context, phrase string) ([]string, error) {
	if snippet, ok := e.Find(phrase); ok {
		return []string{snippet}, nil
	}
	return nil, nil
}
