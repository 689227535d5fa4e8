package embed

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashingDeterministic(t *testing.T) {
	h := NewHashing(128, "french", nil)
	ctx := context.Background()

	a, _ := h.Embed(ctx, "livraison très rapide du colis")
	b, _ := h.Embed(ctx, "livraison très rapide du colis")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected identical vectors for identical text")
	}
	if len(a) != 128 {
		t.Fatalf("expected dim 128, got %d", len(a))
	}
}

func TestHashingSimilarityOrdering(t *testing.T) {
	h := NewHashing(0, "french", nil)
	ctx := context.Background()

	base, _ := h.Embed(ctx, "livraison rapide colis")
	near, _ := h.Embed(ctx, "livraisons rapides colis")
	far, _ := h.Embed(ctx, "accueil chaleureux restaurant")

	simNear := CosineSimilarity(base, near)
	simFar := CosineSimilarity(base, far)
	if simNear <= simFar {
		t.Errorf("expected stemmed variants closer: near=%.3f far=%.3f", simNear, simFar)
	}
	if simNear < 0.9 {
		t.Errorf("expected stems to collapse inflections, got %.3f", simNear)
	}
}

func TestHashingEmptyText(t *testing.T) {
	vec, err := NewHashing(16, "french", nil).Embed(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range vec {
		if f != 0 {
			t.Fatal("expected zero vector for empty text")
		}
	}
}

func TestStemFallback(t *testing.T) {
	if Stem("livraisons", "french") != Stem("livraison", "french") {
		t.Errorf("expected plural to share a stem: %q vs %q", Stem("livraisons", "french"), Stem("livraison", "french"))
	}
	if Stem("word", "klingon") != "word" {
		t.Error("expected unsupported language to return the word")
	}
	if Stem("word", "") != "word" {
		t.Error("expected empty language to return the word")
	}
}

type countingEmbedder struct {
	calls int
	fail  bool
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("boom")
	}
	return []float32{float32(len(text)), 1}, nil
}

type mapCache struct {
	mu   sync.Mutex
	vecs map[string][]float32
}

func (m *mapCache) GetEmbedding(ctx context.Context, model, text string) ([]float32, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vecs[model+"|"+text]
	return v, ok, nil
}

func (m *mapCache) PutEmbedding(ctx context.Context, model, text string, vec []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vecs[model+"|"+text] = vec
	return nil
}

func TestCachedSkipsHits(t *testing.T) {
	inner := &countingEmbedder{}
	cache := &mapCache{vecs: make(map[string][]float32)}
	c := NewCached(inner, cache, "test", nil)
	ctx := context.Background()

	if _, err := c.EmbedBatch(ctx, []string{"a", "bb"}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 inner calls, got %d", inner.calls)
	}

	vecs, err := c.EmbedBatch(ctx, []string{"bb", "ccc", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 3 {
		t.Errorf("expected only the miss to be embedded, got %d calls", inner.calls)
	}
	if vecs[0][0] != 2 || vecs[1][0] != 3 || vecs[2][0] != 1 {
		t.Errorf("vectors out of order: %v", vecs)
	}
}

func TestCachedPropagatesErrors(t *testing.T) {
	c := NewCached(&countingEmbedder{fail: true}, &mapCache{vecs: map[string][]float32{}}, "test", nil)
	if _, err := c.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error from wrapped embedder")
	}
}

func TestEmbedAllSequential(t *testing.T) {
	inner := &countingEmbedder{}
	vecs, err := EmbedAll(context.Background(), inner, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 3 || inner.calls != 3 {
		t.Errorf("expected 3 vectors and calls, got %d/%d", len(vecs), inner.calls)
	}
}
