package refine

import (
	"context"
	"fmt"
	"sync"

	cosine "github.com/gaspiman/cosine_similarity"

	"github.com/cognicore/revtrend/pkg/revtrend/embed"
	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
)

// Similarity scores how close two phrases are, in [-1, 1].
type Similarity interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// SimilarityFunc adapts a function to Similarity.
type SimilarityFunc func(ctx context.Context, a, b string) (float64, error)

// Similarity implements Similarity.
func (f SimilarityFunc) Similarity(ctx context.Context, a, b string) (float64, error) {
	return f(ctx, a, b)
}

// Lexical compares phrases as bags of snowball stems. Inflected forms of the
// same words score 1; phrases sharing no stem score 0.
type Lexical struct {
	language  string
	tokenizer *ingest.Tokenizer
}

// NewLexical creates a stem-overlap similarity. language is a snowball
// language name.
func NewLexical(language string, tokenizer *ingest.Tokenizer) *Lexical {
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer(nil)
	}
	return &Lexical{language: language, tokenizer: tokenizer}
}

// Similarity implements Similarity.
func (l *Lexical) Similarity(ctx context.Context, a, b string) (float64, error) {
	sa, sb := l.stems(a), l.stems(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0, nil
	}

	index := make(map[string]int)
	for _, s := range sa {
		if _, ok := index[s]; !ok {
			index[s] = len(index)
		}
	}
	for _, s := range sb {
		if _, ok := index[s]; !ok {
			index[s] = len(index)
		}
	}
	va := make([]float64, len(index))
	vb := make([]float64, len(index))
	for _, s := range sa {
		va[index[s]]++
	}
	for _, s := range sb {
		vb[index[s]]++
	}

	sim, err := cosine.Cosine(va, vb)
	if err != nil {
		return 0, fmt.Errorf("lexical similarity: %w", err)
	}
	return sim, nil
}

func (l *Lexical) stems(phrase string) []string {
	words := l.tokenizer.Tokenize(phrase)
	if len(words) == 0 {
		words = l.tokenizer.Words(phrase)
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = embed.Stem(w, l.language)
	}
	return out
}

// Embedding compares phrases by the cosine of their embeddings. Vectors are
// memoized, since every candidate is compared against every accepted phrase.
type Embedding struct {
	embedder embed.Embedder

	mu    sync.Mutex
	cache map[string][]float32
}

// NewEmbedding creates an embedding cosine similarity.
func NewEmbedding(e embed.Embedder) *Embedding {
	return &Embedding{embedder: e, cache: make(map[string][]float32)}
}

// Similarity implements Similarity.
func (s *Embedding) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := s.vector(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := s.vector(ctx, b)
	if err != nil {
		return 0, err
	}
	return embed.CosineSimilarity(va, vb), nil
}

func (s *Embedding) vector(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	vec, ok := s.cache[text]
	s.mu.Unlock()
	if ok {
		return vec, nil
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding similarity: %w", err)
	}
	s.mu.Lock()
	s.cache[text] = vec
	s.mu.Unlock()
	return vec, nil
}
