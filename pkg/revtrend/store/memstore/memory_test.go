package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/revtrend/pkg/revtrend/embed"
	"github.com/cognicore/revtrend/pkg/revtrend/store"
)

var _ store.Store = (*Store)(nil)
var _ embed.Cache = (*Store)(nil)

func sampleRun(id string) store.Run {
	return store.Run{
		ID:        id,
		Input:     "reviews.tsv",
		StartedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Total:     4,
		Partitions: []store.PartitionRecord{{
			Sentiment: "POSITIVE",
			Count:     3,
			Summary:   "Les clients saluent le service.",
			Status:    "generated",
			Trends:    []store.TrendRecord{{Text: "service client rapide", Support: 3}},
		}},
	}
}

func TestRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.SaveRun(ctx, sampleRun("01A")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, err := s.GetRun(ctx, "01A")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Partitions[0].Trends[0].Support != 3 {
		t.Errorf("unexpected run %+v", got)
	}
}

func TestGetRunMissing(t *testing.T) {
	_, err := New().GetRun(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	if err := New().SaveRun(context.Background(), store.Run{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"01A", "01C", "01B"} {
		s.SaveRun(ctx, sampleRun(id))
	}
	runs, _ := s.ListRuns(ctx, 2)
	if len(runs) != 2 || runs[0].ID != "01C" || runs[1].ID != "01B" {
		t.Fatalf("unexpected order %+v", runs)
	}
}

func TestEmbeddingCache(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, ok, _ := s.GetEmbedding(ctx, "m", "texte"); ok {
		t.Fatal("expected miss")
	}
	vec := []float32{0.1, 0.2}
	s.PutEmbedding(ctx, "m", "texte", vec)
	vec[0] = 9

	got, ok, err := s.GetEmbedding(ctx, "m", "texte")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got[0] != 0.1 {
		t.Errorf("cache should copy on put, got %v", got)
	}
	if _, ok, _ := s.GetEmbedding(ctx, "other", "texte"); ok {
		t.Error("entries must be namespaced by model")
	}
}
