package keyphrase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// Candidate word-count window: words > MinWords and <= MaxWords.
const (
	DefaultMinWords = 2
	DefaultMaxWords = 6
)

// Candidate is one phrase proposed by one extractor for one review.
type Candidate struct {
	Text   string
	Source string
	Review int
}

// Options configures the candidate union.
type Options struct {
	MinWords int           // exclusive lower bound
	MaxWords int           // inclusive upper bound; <= 0 means unbounded
	Timeout  time.Duration // per extractor call; 0 disables
	Logger   *log.Logger
}

// DefaultOptions returns the (2,6] window with a 30s per-call timeout.
func DefaultOptions() Options {
	return Options{
		MinWords: DefaultMinWords,
		MaxWords: DefaultMaxWords,
		Timeout:  30 * time.Second,
	}
}

// Union runs several extractors over a text and keeps every phrase inside
// the word-count window. Duplicates across extractors are kept; counting
// them is the aggregator's job.
type Union struct {
	extractors []Extractor
	opts       Options
	logger     *log.Logger
}

// NewUnion creates a union of extractors, run in the given order.
func NewUnion(opts Options, extractors ...Extractor) *Union {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Union{extractors: extractors, opts: opts, logger: logger}
}

// Extractors returns the extractors in run order.
func (u *Union) Extractors() []Extractor {
	return u.extractors
}

// Extract runs every extractor on text. A failing extractor only loses its
// own contribution for this review.
func (u *Union) Extract(ctx context.Context, review int, text string) []Candidate {
	var out []Candidate
	for _, x := range u.extractors {
		kws, err := u.run(ctx, x, text)
		if err != nil {
			if ctx.Err() != nil {
				return out
			}
			level := u.logger.Warn
			if errors.Is(err, internalerr.ErrTooShort) {
				level = u.logger.Debug
			}
			level("extractor failed, skipping contribution",
				"extractor", x.Name(), "review", review, "err", err)
			continue
		}
		for _, kw := range kws {
			if !u.inWindow(kw.Phrase) {
				continue
			}
			out = append(out, Candidate{Text: kw.Phrase, Source: x.Name(), Review: review})
		}
	}
	return out
}

// Phrases is Extract without provenance.
func (u *Union) Phrases(ctx context.Context, review int, text string) []string {
	cands := u.Extract(ctx, review, text)
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}

func (u *Union) run(ctx context.Context, x Extractor, text string) (kws []Keyword, err error) {
	if u.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.opts.Timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			kws = nil
			err = fmt.Errorf("%w: panic: %v", internalerr.ErrExtractorFailed, r)
		}
	}()
	return x.Extract(ctx, text)
}

func (u *Union) inWindow(phrase string) bool {
	n := ingest.WordCount(phrase)
	if n <= u.opts.MinWords {
		return false
	}
	return u.opts.MaxWords <= 0 || n <= u.opts.MaxWords
}
