// Package store archives runs and caches embeddings between runs.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// ErrNotFound is returned by GetRun for an unknown run ID.
var ErrNotFound = internalerr.ErrNotFound

// Store is the run archive interface.
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Embedding cache
	GetEmbedding(ctx context.Context, model, text string) ([]float32, bool, error)
	PutEmbedding(ctx context.Context, model, text string, vec []float32) error
}

// Run is one archived pipeline execution.
type Run struct {
	ID         string
	Input      string
	StartedAt  time.Time
	Total      int
	Skipped    int
	Partitions []PartitionRecord
}

// PartitionRecord is the outcome of one sentiment class within a run.
type PartitionRecord struct {
	Sentiment string
	Count     int
	Summary   string
	Status    string
	Trends    []TrendRecord
}

// TrendRecord is an archived trend.
type TrendRecord struct {
	Text     string
	Support  int
	Evidence []string
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a lexicographically sortable run identifier.
func NewRunID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// CloneRun returns a deep copy of r.
func CloneRun(r Run) Run {
	out := r
	out.Partitions = make([]PartitionRecord, len(r.Partitions))
	for i, p := range r.Partitions {
		cp := p
		cp.Trends = make([]TrendRecord, len(p.Trends))
		for j, t := range p.Trends {
			ct := t
			ct.Evidence = append([]string(nil), t.Evidence...)
			cp.Trends[j] = ct
		}
		out.Partitions[i] = cp
	}
	return out
}
