package embed

import (
	"context"

	"github.com/charmbracelet/log"
)

// Cache persists embeddings across runs, keyed by model and text.
type Cache interface {
	GetEmbedding(ctx context.Context, model, text string) ([]float32, bool, error)
	PutEmbedding(ctx context.Context, model, text string, vec []float32) error
}

// Cached wraps an embedder with a persistent cache. Cache failures are
// logged and fall through to the wrapped embedder.
type Cached struct {
	next   Embedder
	cache  Cache
	model  string
	logger *log.Logger
}

// NewCached wraps next. The model name namespaces cache entries; when empty
// it is taken from next if it implements Named.
func NewCached(next Embedder, cache Cache, model string, logger *log.Logger) *Cached {
	if model == "" {
		if n, ok := next.(Named); ok {
			model = n.ModelName()
		}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{next: next, cache: cache, model: model, logger: logger}
}

// ModelName implements Named.
func (c *Cached) ModelName() string { return c.model }

// Embed implements Embedder.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch implements BatchEmbedder. Only cache misses reach the wrapped
// embedder.
func (c *Cached) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	for i, t := range texts {
		vec, ok, err := c.cache.GetEmbedding(ctx, c.model, t)
		if err != nil {
			c.logger.Warn("embedding cache read failed", "model", c.model, "err", err)
		}
		if ok {
			out[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := EmbedAll(ctx, c.next, missTexts)
	if err != nil {
		return nil, err
	}
	for j, i := range missIdx {
		out[i] = vecs[j]
		if err := c.cache.PutEmbedding(ctx, c.model, missTexts[j], vecs[j]); err != nil {
			c.logger.Warn("embedding cache write failed", "model", c.model, "err", err)
		}
	}
	c.logger.Debug("embedded texts", "model", c.model, "hits", len(texts)-len(missTexts), "misses", len(missTexts))
	return out, nil
}
