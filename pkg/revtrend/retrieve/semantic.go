package retrieve

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/hnsw"

	"github.com/cognicore/revtrend/pkg/revtrend/embed"
	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
)

// Semantic retrieval defaults.
const (
	DefaultTopK          = 3
	DefaultChunkMinWords = 5
	indexSeed            = 42
)

// ErrIndexNotBuilt is returned when Find runs before Build.
var ErrIndexNotBuilt = errors.New("retrieve: index not built")

// SemanticOptions configures the chunk index.
type SemanticOptions struct {
	TopK          int
	ChunkMinWords int
	Logger        *log.Logger
}

// Semantic embeds sentence chunks of the corpus into an HNSW graph and
// returns the chunks nearest to a trend. The index is built once and owned
// by the retriever until Close.
type Semantic struct {
	embedder embed.Embedder
	opts     SemanticOptions
	logger   *log.Logger

	mu     sync.RWMutex
	graph  *hnsw.Graph[int]
	chunks []string
}

// NewSemantic creates an unbuilt semantic retriever.
func NewSemantic(e embed.Embedder, opts SemanticOptions) *Semantic {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.ChunkMinWords <= 0 {
		opts.ChunkMinWords = DefaultChunkMinWords
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Semantic{embedder: e, opts: opts, logger: logger}
}

// Build chunks texts on sentence boundaries and indexes every chunk with
// enough words. Building again replaces the index.
func (s *Semantic) Build(ctx context.Context, texts []string) (err error) {
	chunks := dedupe(ingest.Chunks(texts, s.opts.ChunkMinWords))
	vecs, err := embed.EmbedAll(ctx, s.embedder, chunks)
	if err != nil {
		return fmt.Errorf("retrieve: embed chunks: %w", err)
	}

	g := hnsw.NewGraph[int]()
	g.Distance = hnsw.EuclideanDistance
	g.Rng = rand.New(rand.NewSource(indexSeed))
	if len(chunks) > g.EfSearch {
		g.EfSearch = len(chunks)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("retrieve: index build: %v", r)
		}
	}()
	for i, vec := range vecs {
		if len(vec) == 0 {
			continue
		}
		g.Add(hnsw.MakeNode(i, vec))
	}

	s.mu.Lock()
	s.graph = g
	s.chunks = chunks
	s.mu.Unlock()

	s.logger.Debug("built chunk index", "chunks", len(chunks), "indexed", g.Len())
	return nil
}

// Len returns the number of indexed chunks.
func (s *Semantic) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil {
		return 0
	}
	return s.graph.Len()
}

// Find returns up to TopK chunks nearest to phrase, closest first.
func (s *Semantic) Find(ctx context.Context, phrase string) (passages []string, err error) {
	s.mu.RLock()
	g, chunks := s.graph, s.chunks
	s.mu.RUnlock()
	if g == nil {
		return nil, ErrIndexNotBuilt
	}
	if g.Len() == 0 {
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, phrase)
	if err != nil {
		return nil, fmt.Errorf("retrieve: embed trend: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			passages, err = nil, fmt.Errorf("retrieve: search: %v", r)
		}
	}()

	type hit struct {
		key  int
		dist float32
	}
	nodes := g.Search(vec, s.opts.TopK)
	hits := make([]hit, 0, len(nodes))
	for _, n := range nodes {
		if len(n.Value) != len(vec) {
			continue
		}
		hits = append(hits, hit{key: n.Key, dist: hnsw.EuclideanDistance(vec, n.Value)})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].key < hits[j].key
	})

	for _, h := range hits {
		passages = append(passages, chunks[h.key])
	}
	return passages, nil
}

// Retrieve implements Retriever.
func (s *Semantic) Retrieve(ctx context.Context, phrase string) ([]string, error) {
	return s.Find(ctx, phrase)
}

// Close releases the index.
func (s *Semantic) Close() {
	s.mu.Lock()
	s.graph = nil
	s.chunks = nil
	s.mu.Unlock()
}

func dedupe(chunks []string) []string {
	seen := make(map[string]struct{}, len(chunks))
	out := chunks[:0]
	for _, c := range chunks {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
