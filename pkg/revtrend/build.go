package revtrend

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/cognicore/revtrend/internal/llm"
	"github.com/cognicore/revtrend/pkg/revtrend/analytics"
	"github.com/cognicore/revtrend/pkg/revtrend/classify"
	"github.com/cognicore/revtrend/pkg/revtrend/config"
	"github.com/cognicore/revtrend/pkg/revtrend/embed"
	"github.com/cognicore/revtrend/pkg/revtrend/generate"
	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
	"github.com/cognicore/revtrend/pkg/revtrend/keyphrase"
	"github.com/cognicore/revtrend/pkg/revtrend/refine"
	"github.com/cognicore/revtrend/pkg/revtrend/store"
	"github.com/cognicore/revtrend/pkg/revtrend/synth"
)

// FromSettings wires an Engine from run settings and loaded configuration.
// st may be nil; when set it archives runs and caches embeddings.
func FromSettings(s config.Settings, comps *config.Components, st store.Store, logger *log.Logger) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if comps == nil {
		return nil, fmt.Errorf("engine: no configuration components: %w", internalerr.ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.Default()
	}
	profile := comps.Profile
	tok := comps.Tokenizer

	embedder := NewEmbedder(s, comps, st, logger)

	var sim refine.Similarity
	if s.Refine.Similarity == "embedding" {
		sim = refine.NewEmbedding(embedder)
	} else {
		sim = refine.NewLexical(profile.Snowball, tok)
	}

	gen, err := NewGenerator(s, tok)
	if err != nil {
		return nil, err
	}

	budget := synth.FixedBudget(s.Synthesis.MaxSentences)
	if s.Synthesis.Budget == config.BudgetTrends {
		perTrend := synth.TrendBudget(1)
		budget = func(n int) int { return min(perTrend(n), s.Synthesis.MaxSentences) }
	}

	return New(Options{
		Profile:   profile,
		Tokenizer: tok,
		Embedder:  embedder,
		Extractors: []keyphrase.Extractor{
			keyphrase.NewTextRank(tok, keyphrase.TextRankOptions{
				Window:   s.Extraction.TextRankWindow,
				MaxNgram: s.Extraction.TextRankNgram,
				Top:      s.Extraction.TextRankTop,
			}),
			keyphrase.NewEmbeddingExtractor(embedder, tok, keyphrase.EmbeddingOptions{
				MinNgram: s.Extraction.EmbeddingMin,
				MaxNgram: s.Extraction.EmbeddingMax,
				Top:      s.Extraction.EmbeddingTop,
			}),
		},
		Candidates: keyphrase.Options{
			MinWords: s.Extraction.MinWords,
			MaxWords: s.Extraction.MaxWords,
			Timeout:  s.Timeout,
			Logger:   logger,
		},
		Selection: analytics.Options{
			TopN:      s.Selection.TopN,
			MinCount:  s.Selection.MinCount,
			Blacklist: comps.Blacklist,
		},
		Refiner: refine.New(refine.Options{
			Rewriter:   comps.Rewriter,
			Lexicon:    comps.Lexicon,
			Similarity: sim,
			Threshold:  s.Refine.Threshold,
			Tagger:     comps.Tagger,
			MinWords:   s.Refine.MinWords,
			MaxWords:   s.Refine.MaxWords,
			Blacklist:  comps.Blacklist,
			Tokenizer:  tok,
			Logger:     logger,
		}),
		Evidence: EvidenceOptions{
			Strategy:      s.Evidence.Strategy,
			Scope:         s.Evidence.Scope,
			Window:        s.Evidence.Window,
			TopK:          s.Evidence.TopK,
			ChunkMinWords: s.Evidence.ChunkMinWords,
		},
		Synthesizer: synth.New(synth.Options{
			Profile:      profile,
			Generator:    gen,
			Decoding:     s.Synthesis.Decoding,
			Template:     s.Synthesis.Template,
			Budget:       budget,
			MaxPassages:  s.Evidence.MaxPassages,
			MaxAttempts:  s.Synthesis.MaxAttempts,
			MinSentences: s.Synthesis.MinSentences,
			MinLastWords: s.Synthesis.MinLastWords,
			Timeout:      s.Timeout,
			Logger:       logger,
		}),
		Store:    st,
		Parallel: s.Parallel,
		Logger:   logger,
	}), nil
}

// NewEmbedder returns the Ollama embedder when an endpoint is configured and
// the offline hashing embedder otherwise, cached through st when set.
func NewEmbedder(s config.Settings, comps *config.Components, st store.Store, logger *log.Logger) embed.Embedder {
	var e embed.Embedder
	if s.Models.Embedding.Endpoint != "" {
		e = embed.NewOllama(s.Models.Embedding.Endpoint, s.Models.Embedding.Model,
			embed.WithRateLimit(s.Models.Embedding.RPS))
	} else {
		e = embed.NewHashing(s.Models.Embedding.Dim, comps.Profile.Snowball, comps.Tokenizer)
	}
	if st != nil {
		e = embed.NewCached(e, st, "", logger)
	}
	return e
}

// NewGenerator returns the configured text generator. tok feeds the
// extractive backend and may be nil.
func NewGenerator(s config.Settings, tok *ingest.Tokenizer) (generate.Generator, error) {
	switch s.Synthesis.Generator {
	case config.GeneratorLLM:
		m := s.Models.LLM
		if m.Endpoint == "" || m.Model == "" {
			return nil, fmt.Errorf("llm generator needs an endpoint and a model: %w", internalerr.ErrInvalidConfig)
		}
		return &llm.Client{
			BaseURL:    m.Endpoint,
			APIKey:     m.APIKey,
			Model:      m.Model,
			HTTPClient: &http.Client{Timeout: s.Timeout},
			Limiter:    limiter(m.RPS),
		}, nil
	default:
		return generate.NewLexRank(tok), nil
	}
}

// NewClassifier returns the configured sentiment classifier.
func NewClassifier(s config.Settings) (classify.Classifier, error) {
	c := s.Models.Classifier
	switch c.Backend {
	case config.ClassifierHTTP:
		if c.Endpoint == "" {
			return nil, fmt.Errorf("http classifier needs an endpoint: %w", internalerr.ErrInvalidConfig)
		}
		return &classify.HTTP{
			Endpoint:   c.Endpoint,
			Token:      c.Token,
			MaxChars:   c.MaxChars,
			HTTPClient: &http.Client{Timeout: s.Timeout},
			Limiter:    limiter(c.RPS),
		}, nil
	default:
		p, err := classify.NewPolarity(s.Language)
		if err != nil {
			return nil, fmt.Errorf("polarity classifier: %v: %w", err, internalerr.ErrInvalidConfig)
		}
		return p, nil
	}
}

func limiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}
