package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/revtrend/pkg/revtrend/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu         sync.RWMutex
	runs       map[string]store.Run
	embeddings map[string][]float32
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:       make(map[string]store.Run),
		embeddings: make(map[string][]float32),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run, keyed by ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = store.CloneRun(r)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, store.ErrNotFound)
	}
	return store.CloneRun(r), nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, store.CloneRun(r))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetEmbedding returns a cached vector.
func (s *Store) GetEmbedding(ctx context.Context, model, text string) ([]float32, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vec, ok := s.embeddings[key(model, text)]
	if !ok {
		return nil, false, nil
	}
	return append([]float32(nil), vec...), true, nil
}

// PutEmbedding caches a vector.
func (s *Store) PutEmbedding(ctx context.Context, model, text string, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.embeddings[key(model, text)] = append([]float32(nil), vec...)
	return nil
}

func key(model, text string) string {
	return model + "\x00" + text
}
