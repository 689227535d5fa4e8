// Package keyphrase extracts candidate multi-word phrases from review text.
package keyphrase

import (
	"context"
	"math"
	"sort"
)

// Keyword is a scored phrase returned by an extractor.
type Keyword struct {
	Phrase string
	Score  float64
}

// Extractor returns scored keyphrases for one text. Implementations return
// internalerr.ErrTooShort when the text carries too little signal.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, text string) ([]Keyword, error)
}

// ngram is a candidate phrase with the position it was first seen at.
type ngram struct {
	phrase string
	first  int
	score  float64
}

// rankNgrams sorts by score descending, ties by first occurrence, and caps
// the result at limit (limit <= 0 keeps all).
func rankNgrams(grams []ngram, limit int) []Keyword {
	sort.SliceStable(grams, func(i, j int) bool {
		if grams[i].score != grams[j].score {
			return grams[i].score > grams[j].score
		}
		return grams[i].first < grams[j].first
	})
	if limit > 0 && len(grams) > limit {
		grams = grams[:limit]
	}
	out := make([]Keyword, len(grams))
	for i, g := range grams {
		out[i] = Keyword{Phrase: g.phrase, Score: g.score}
	}
	return out
}

// round trims float noise so scores computed in map order compare stably.
func round(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
