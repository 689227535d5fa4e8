package keyphrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/revtrend/pkg/revtrend/embed"
	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// Embedding extractor defaults.
const (
	DefaultEmbeddingMinNgram = 2
	DefaultEmbeddingMaxNgram = 8
	DefaultEmbeddingTop      = 5
)

// EmbeddingOptions configures the embedding-similarity extractor.
type EmbeddingOptions struct {
	MinNgram int
	MaxNgram int
	Top      int
}

// EmbeddingExtractor scores content-word n-grams by the cosine similarity of
// their embedding to the embedding of the whole text. Stopwords are removed
// before n-grams are formed.
type EmbeddingExtractor struct {
	embedder  embed.Embedder
	tokenizer *ingest.Tokenizer
	opts      EmbeddingOptions
}

// NewEmbeddingExtractor creates the extractor. Zero options take the
// defaults.
func NewEmbeddingExtractor(e embed.Embedder, tokenizer *ingest.Tokenizer, opts EmbeddingOptions) *EmbeddingExtractor {
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer(nil)
	}
	if opts.MinNgram <= 0 {
		opts.MinNgram = DefaultEmbeddingMinNgram
	}
	if opts.MaxNgram < opts.MinNgram {
		opts.MaxNgram = DefaultEmbeddingMaxNgram
		if opts.MaxNgram < opts.MinNgram {
			opts.MaxNgram = opts.MinNgram
		}
	}
	if opts.Top <= 0 {
		opts.Top = DefaultEmbeddingTop
	}
	return &EmbeddingExtractor{embedder: e, tokenizer: tokenizer, opts: opts}
}

// Name implements Extractor.
func (x *EmbeddingExtractor) Name() string { return "embedding" }

// Extract implements Extractor.
func (x *EmbeddingExtractor) Extract(ctx context.Context, text string) ([]Keyword, error) {
	tokens := x.tokenizer.Tokenize(text)
	if len(tokens) < x.opts.MinNgram {
		return nil, fmt.Errorf("embedding extractor: %d content words: %w", len(tokens), internalerr.ErrTooShort)
	}

	seen := make(map[string]struct{})
	var grams []ngram
	for i := range tokens {
		for n := x.opts.MinNgram; n <= x.opts.MaxNgram && i+n <= len(tokens); n++ {
			phrase := strings.Join(tokens[i:i+n], " ")
			if _, ok := seen[phrase]; ok {
				continue
			}
			seen[phrase] = struct{}{}
			grams = append(grams, ngram{phrase: phrase, first: i})
		}
	}

	texts := make([]string, 0, len(grams)+1)
	texts = append(texts, text)
	for _, g := range grams {
		texts = append(texts, g.phrase)
	}
	vecs, err := embed.EmbedAll(ctx, x.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding extractor: %w", err)
	}

	doc := vecs[0]
	for i := range grams {
		grams[i].score = round(embed.CosineSimilarity(doc, vecs[i+1]))
	}
	return rankNgrams(grams, x.opts.Top), nil
}
