// Package embed provides text embedding generation and similarity computation.
package embed

import (
	"context"
	"fmt"
	"math"

	cosine "github.com/gaspiman/cosine_similarity"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BatchEmbedder extends Embedder with batch embedding support.
// When EmbedBatch returns nil error, result[i] corresponds to texts[i].
type BatchEmbedder interface {
	Embedder
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Named is implemented by embedders that can identify their model, used as
// the cache namespace.
type Named interface {
	ModelName() string
}

// EmbedAll embeds every text, using one batch call when e supports it.
func EmbedAll(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if be, ok := e.(BatchEmbedder); ok {
		vecs, err := be.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vecs) != len(texts) {
			return nil, fmt.Errorf("embed: got %d vectors for %d texts", len(vecs), len(texts))
		}
		return vecs, nil
	}

	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("embed: text %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

// CosineSimilarity computes similarity between two embeddings.
// Returns 0 when the vectors differ in length or either is a zero vector.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	sim, err := cosine.Cosine(toFloat64(a), toFloat64(b))
	if err != nil || math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0
	}
	return sim
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

func normalizeL2(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return v
}
