package keyphrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcadenas/pagerank"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// TextRank defaults.
const (
	DefaultTextRankWindow = 3
	DefaultTextRankNgram  = 3
	DefaultTextRankTop    = 30
	damping               = 0.85
	tolerance             = 1e-6
)

// TextRankOptions configures the graph-based extractor.
type TextRankOptions struct {
	Window   int // co-occurrence distance in words
	MaxNgram int
	Top      int
}

// TextRank ranks content words with PageRank over a co-occurrence graph and
// scores n-grams by the summed rank of their content words. N-grams never
// start or end on a stopword.
type TextRank struct {
	tokenizer *ingest.Tokenizer
	opts      TextRankOptions
}

// NewTextRank creates the extractor. Zero options take the defaults.
func NewTextRank(tokenizer *ingest.Tokenizer, opts TextRankOptions) *TextRank {
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer(nil)
	}
	if opts.Window < 2 {
		opts.Window = DefaultTextRankWindow
	}
	if opts.MaxNgram <= 0 {
		opts.MaxNgram = DefaultTextRankNgram
	}
	if opts.Top <= 0 {
		opts.Top = DefaultTextRankTop
	}
	return &TextRank{tokenizer: tokenizer, opts: opts}
}

// Name implements Extractor.
func (t *TextRank) Name() string { return "textrank" }

// Extract implements Extractor.
func (t *TextRank) Extract(ctx context.Context, text string) ([]Keyword, error) {
	words := t.tokenizer.Words(text)
	content := make([]bool, len(words))
	ids := make(map[string]int)
	var vocab []string
	for i, w := range words {
		if !t.tokenizer.IsContent(w) {
			continue
		}
		content[i] = true
		if _, ok := ids[w]; !ok {
			ids[w] = len(vocab)
			vocab = append(vocab, w)
		}
	}
	if len(vocab) < 2 {
		return nil, fmt.Errorf("textrank: %d content words: %w", len(vocab), internalerr.ErrTooShort)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	graph := pagerank.New()
	linked := false
	for i := range words {
		if !content[i] {
			continue
		}
		for j := i + 1; j < len(words) && j < i+t.opts.Window; j++ {
			if !content[j] || words[i] == words[j] {
				continue
			}
			a, b := ids[words[i]], ids[words[j]]
			graph.Link(a, b)
			graph.Link(b, a)
			linked = true
		}
	}

	ranks := make([]float64, len(vocab))
	if linked {
		graph.Rank(damping, tolerance, func(id int, rank float64) {
			if id >= 0 && id < len(ranks) {
				ranks[id] = round(rank)
			}
		})
	} else {
		for i := range ranks {
			ranks[i] = 1 / float64(len(ranks))
		}
	}

	index := make(map[string]int)
	var grams []ngram
	for i := range words {
		if !content[i] {
			continue
		}
		for n := 1; n <= t.opts.MaxNgram && i+n <= len(words); n++ {
			if !content[i+n-1] {
				continue
			}
			var score float64
			for k := i; k < i+n; k++ {
				if content[k] {
					score += ranks[ids[words[k]]]
				}
			}
			score = round(score)
			phrase := strings.Join(words[i:i+n], " ")
			if at, ok := index[phrase]; ok {
				if score > grams[at].score {
					grams[at].score = score
				}
				continue
			}
			index[phrase] = len(grams)
			grams = append(grams, ngram{phrase: phrase, first: i, score: score})
		}
	}
	return rankNgrams(grams, t.opts.Top), nil
}
