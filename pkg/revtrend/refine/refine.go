// Package refine turns frequent candidate phrases into the final trend list
// of a partition.
package refine

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/lexicon"
	"github.com/cognicore/revtrend/pkg/revtrend/postag"
	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

// Refinement defaults.
const (
	DefaultThreshold = 0.85
	DefaultMinWords  = 3
	DefaultMaxWords  = 8
	minTokens        = 3 // a phrase needs more than two tokens to be compared
)

// Options configures a Refiner. Nil collaborators disable their step,
// except Similarity, which defaults to Lexical without stemming.
type Options struct {
	Rewriter   *lexicon.Rewriter
	Lexicon    *lexicon.Lexicon
	Similarity Similarity
	Threshold  float64
	Tagger     postag.Tagger
	MinWords   int
	MaxWords   int
	Blacklist  []string // case-insensitive substrings
	Tokenizer  *ingest.Tokenizer
	Logger     *log.Logger
}

// Refiner applies, in order: literal replacements, synonym
// canonicalization, similarity dedup, the part-of-speech gate and the
// word-count/blacklist gate. Refinement of one list is sequential: each
// accepted phrase changes what later phrases are compared against.
type Refiner struct {
	opts      Options
	blacklist []string
	logger    *log.Logger
}

// New creates a Refiner, filling zero options with defaults.
func New(opts Options) *Refiner {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MinWords <= 0 {
		opts.MinWords = DefaultMinWords
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = DefaultMaxWords
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = ingest.NewTokenizer(nil)
	}
	if opts.Similarity == nil {
		opts.Similarity = NewLexical("", opts.Tokenizer)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	black := make([]string, 0, len(opts.Blacklist))
	for _, b := range opts.Blacklist {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			black = append(black, b)
		}
	}
	return &Refiner{opts: opts, blacklist: black, logger: logger}
}

// Refine returns the surviving trends in input order. A phrase dropped as a
// near duplicate adds its support to the accepted phrase it matched. The
// only error is context cancellation.
func (r *Refiner) Refine(ctx context.Context, candidates trend.List) (trend.List, error) {
	type seenPhrase struct {
		text string
		out  int // index in result, -1 when gated out later
	}
	var seen []seenPhrase
	var out trend.List

next:
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		text := r.opts.Rewriter.Apply(c.Text)
		if r.opts.Lexicon != nil {
			text, _ = r.opts.Lexicon.Canonicalize(text)
		}
		text = strings.TrimSpace(text)

		tokens := r.opts.Tokenizer.Words(text)
		if len(tokens) < minTokens {
			continue
		}

		for _, s := range seen {
			sim, err := r.opts.Similarity.Similarity(ctx, text, s.text)
			if err != nil {
				if ctx.Err() != nil {
					return out, ctx.Err()
				}
				r.logger.Warn("similarity failed, treating phrases as distinct",
					"a", text, "b", s.text, "err", err)
				continue
			}
			if sim > r.opts.Threshold {
				if s.out >= 0 {
					out[s.out].Support += c.Support
				}
				continue next
			}
		}

		entry := seenPhrase{text: text, out: -1}
		if r.accept(text, tokens) {
			entry.out = len(out)
			out = append(out, trend.Trend{Text: text, Support: c.Support})
		}
		seen = append(seen, entry)
	}
	return out, nil
}

func (r *Refiner) accept(text string, tokens []string) bool {
	if r.opts.Tagger != nil && !postag.HasSubstantive(r.opts.Tagger, tokens) {
		return false
	}
	n := ingest.WordCount(text)
	if n < r.opts.MinWords || n > r.opts.MaxWords {
		return false
	}
	lower := strings.ToLower(text)
	for _, b := range r.blacklist {
		if strings.Contains(lower, b) {
			return false
		}
	}
	return true
}

// Threshold returns the dedup threshold in use.
func (r *Refiner) Threshold() float64 {
	return r.opts.Threshold
}

// Similarity returns the similarity in use.
func (r *Refiner) Similarity() Similarity {
	return r.opts.Similarity
}
