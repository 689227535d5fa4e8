package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/revtrend/pkg/revtrend/generate"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// Evidence strategies.
const (
	EvidenceNone     = "none"
	EvidenceExact    = "exact"
	EvidenceSemantic = "semantic"
)

// Evidence index scopes.
const (
	ScopeCorpus    = "corpus"
	ScopePartition = "partition"
)

// Generator backends.
const (
	GeneratorLexRank = "lexrank"
	GeneratorLLM     = "llm"
)

// Classifier backends.
const (
	ClassifierHTTP     = "http"
	ClassifierPolarity = "polarity"
)

// Sentence budgets.
const (
	BudgetFixed  = "fixed"
	BudgetTrends = "trends"
)

// Settings is the YAML run file.
type Settings struct {
	Language string        `yaml:"language"`
	LogLevel string        `yaml:"log_level"`
	Parallel int           `yaml:"parallel"`
	Timeout  time.Duration `yaml:"timeout"`

	Artifacts  Artifacts          `yaml:"artifacts"`
	Extraction ExtractionSettings `yaml:"extraction"`
	Selection  SelectionSettings  `yaml:"selection"`
	Refine     RefineSettings     `yaml:"refine"`
	Evidence   EvidenceSettings   `yaml:"evidence"`
	Synthesis  SynthesisSettings  `yaml:"synthesis"`
	Models     ModelSettings      `yaml:"models"`
	Report     ReportSettings     `yaml:"report"`
}

// Artifacts are the paths of the configuration files read by the Loader.
type Artifacts struct {
	Synonyms     string `yaml:"synonyms"`
	Replacements string `yaml:"replacements"`
	Blacklist    string `yaml:"blacklist"`
	Stoplist     string `yaml:"stoplist"`
	POSLexicon   string `yaml:"pos_lexicon"`
}

// ExtractionSettings bound candidate phrases.
type ExtractionSettings struct {
	MinWords       int `yaml:"min_words"` // exclusive
	MaxWords       int `yaml:"max_words"`
	TextRankWindow int `yaml:"textrank_window"`
	TextRankNgram  int `yaml:"textrank_ngram"`
	TextRankTop    int `yaml:"textrank_top"`
	EmbeddingMin   int `yaml:"embedding_min_ngram"`
	EmbeddingMax   int `yaml:"embedding_max_ngram"`
	EmbeddingTop   int `yaml:"embedding_top"`
}

// SelectionSettings control the frequency aggregator.
type SelectionSettings struct {
	TopN     int `yaml:"top_n"`
	MinCount int `yaml:"min_count"`
}

// RefineSettings control the trend refiner.
type RefineSettings struct {
	Threshold  float64 `yaml:"threshold"`
	MinWords   int     `yaml:"min_words"`
	MaxWords   int     `yaml:"max_words"`
	Similarity string  `yaml:"similarity"` // lexical or embedding
}

// EvidenceSettings control the evidence retriever.
type EvidenceSettings struct {
	Strategy      string `yaml:"strategy"`
	Scope         string `yaml:"scope"`
	Window        int    `yaml:"window"`
	TopK          int    `yaml:"top_k"`
	ChunkMinWords int    `yaml:"chunk_min_words"`
	MaxPassages   int    `yaml:"max_passages"`
}

// SynthesisSettings control the narrative synthesizer.
type SynthesisSettings struct {
	Generator    string            `yaml:"generator"`
	Template     string            `yaml:"template"`
	Budget       string            `yaml:"budget"`
	MaxSentences int               `yaml:"max_sentences"`
	MinSentences int               `yaml:"min_sentences"`
	MinLastWords int               `yaml:"min_last_words"`
	MaxAttempts  int               `yaml:"max_attempts"`
	Decoding     generate.Decoding `yaml:"decoding"`
}

// ModelSettings hold the collaborator endpoints.
type ModelSettings struct {
	LLM        LLMSettings        `yaml:"llm"`
	Classifier ClassifierSettings `yaml:"classifier"`
	Embedding  EmbeddingSettings  `yaml:"embedding"`
}

// LLMSettings configure the OpenAI-compatible chat endpoint.
type LLMSettings struct {
	Endpoint string  `yaml:"endpoint"`
	Model    string  `yaml:"model"`
	APIKey   string  `yaml:"-"`
	RPS      float64 `yaml:"rps"`
}

// ClassifierSettings configure sentiment classification.
type ClassifierSettings struct {
	Backend  string  `yaml:"backend"`
	Endpoint string  `yaml:"endpoint"`
	Token    string  `yaml:"-"`
	MaxChars int     `yaml:"max_chars"`
	RPS      float64 `yaml:"rps"`
}

// EmbeddingSettings configure the embedder. An empty endpoint selects the
// offline hashing embedder.
type EmbeddingSettings struct {
	Endpoint string  `yaml:"endpoint"`
	Model    string  `yaml:"model"`
	Dim      int     `yaml:"dim"`
	RPS      float64 `yaml:"rps"`
}

// ReportSettings control rendering.
type ReportSettings struct {
	ShowEvidence bool `yaml:"show_evidence"`
}

// DefaultSettings returns the settings used when no run file is given.
func DefaultSettings() Settings {
	return Settings{
		Language: "fr",
		LogLevel: "info",
		Parallel: 3,
		Timeout:  60 * time.Second,
		Extraction: ExtractionSettings{
			MinWords:       2,
			MaxWords:       6,
			TextRankWindow: 3,
			TextRankNgram:  3,
			TextRankTop:    30,
			EmbeddingMin:   2,
			EmbeddingMax:   8,
			EmbeddingTop:   5,
		},
		Selection: SelectionSettings{TopN: 20, MinCount: 3},
		Refine: RefineSettings{
			Threshold:  0.85,
			MinWords:   3,
			MaxWords:   8,
			Similarity: "lexical",
		},
		Evidence: EvidenceSettings{
			Strategy:      EvidenceSemantic,
			Scope:         ScopePartition,
			Window:        10,
			TopK:          3,
			ChunkMinWords: 5,
			MaxPassages:   10,
		},
		Synthesis: SynthesisSettings{
			Generator:    GeneratorLexRank,
			Budget:       BudgetFixed,
			MaxSentences: 5,
			MinSentences: 2,
			MinLastWords: 5,
			MaxAttempts:  2,
			Decoding:     generate.DefaultDecoding(),
		},
		Models: ModelSettings{
			LLM:        LLMSettings{Endpoint: "https://api.openai.com/v1/chat/completions", Model: "gpt-4o-mini"},
			Classifier: ClassifierSettings{Backend: ClassifierPolarity, MaxChars: 512},
			Embedding:  EmbeddingSettings{Model: "nomic-embed-text"},
		},
	}
}

// LoadSettings reads a YAML run file on top of DefaultSettings. Keys absent
// from the file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}
	return s, s.Validate()
}

// Validate checks ranges and enumerations.
func (s Settings) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("settings: "+format+": %w", append(args, internalerr.ErrInvalidConfig)...)
	}
	switch {
	case s.Extraction.MaxWords > 0 && s.Extraction.MaxWords <= s.Extraction.MinWords:
		return bad("extraction.max_words %d must exceed min_words %d", s.Extraction.MaxWords, s.Extraction.MinWords)
	case s.Selection.TopN <= 0:
		return bad("selection.top_n must be positive")
	case s.Selection.MinCount < 1:
		return bad("selection.min_count must be at least 1")
	case s.Refine.Threshold <= 0 || s.Refine.Threshold > 1:
		return bad("refine.threshold %.2f out of (0,1]", s.Refine.Threshold)
	case s.Refine.MaxWords < s.Refine.MinWords:
		return bad("refine band %d-%d is empty", s.Refine.MinWords, s.Refine.MaxWords)
	case s.Synthesis.MaxAttempts < 1:
		return bad("synthesis.max_attempts must be at least 1")
	case s.Synthesis.MaxSentences < 1:
		return bad("synthesis.max_sentences must be at least 1")
	}
	if !oneOf(s.Refine.Similarity, "lexical", "embedding") {
		return bad("refine.similarity %q", s.Refine.Similarity)
	}
	if !oneOf(s.Evidence.Strategy, EvidenceNone, EvidenceExact, EvidenceSemantic) {
		return bad("evidence.strategy %q", s.Evidence.Strategy)
	}
	if !oneOf(s.Evidence.Scope, ScopeCorpus, ScopePartition) {
		return bad("evidence.scope %q", s.Evidence.Scope)
	}
	if !oneOf(s.Synthesis.Generator, GeneratorLexRank, GeneratorLLM) {
		return bad("synthesis.generator %q", s.Synthesis.Generator)
	}
	if !oneOf(s.Synthesis.Budget, BudgetFixed, BudgetTrends) {
		return bad("synthesis.budget %q", s.Synthesis.Budget)
	}
	if !oneOf(s.Models.Classifier.Backend, ClassifierHTTP, ClassifierPolarity) {
		return bad("models.classifier.backend %q", s.Models.Classifier.Backend)
	}
	if err := s.Synthesis.Decoding.Validate(); err != nil {
		return fmt.Errorf("settings: synthesis.decoding: %w", err)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
