// Package synth writes the summary paragraph of a sentiment partition from
// its trends and their evidence.
package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cognicore/revtrend/pkg/revtrend/generate"
	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/lang"
	"github.com/cognicore/revtrend/pkg/revtrend/retrieve"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

// Synthesis defaults.
const (
	DefaultMaxSentences = 5
	DefaultMaxAttempts  = 2
	DefaultMinSentences = 2
)

// Status tells how a summary was obtained.
type Status string

const (
	StatusGenerated  Status = "generated"
	StatusNoTrend    Status = "no_trend"
	StatusFailed     Status = "failed"
	StatusFragmented Status = "fragmented"
)

// Options configures a Synthesizer.
type Options struct {
	Profile      *lang.Profile
	Generator    generate.Generator
	Decoding     generate.Decoding
	Template     string // empty uses the profile template
	Budget       SentenceBudget
	MaxPassages  int
	MaxAttempts  int
	MinSentences int // fewer sentences after repair counts as choppy
	MinLastWords int
	Timeout      time.Duration // per generation call; 0 disables
	Logger       *log.Logger
}

// Input is one partition ready for synthesis.
type Input struct {
	Sentiment review.Sentiment
	Trends    trend.List
}

// Result is the summary of one partition.
type Result struct {
	Summary  string
	Status   Status
	Attempts int
	Prompt   string // last prompt sent, empty when none was
}

// Synthesizer builds prompts, calls the generator and repairs its output.
// Generation errors never escape: they become a fixed placeholder.
type Synthesizer struct {
	opts   Options
	logger *log.Logger
}

// New creates a Synthesizer, filling zero options with defaults.
func New(opts Options) *Synthesizer {
	if opts.Profile == nil {
		opts.Profile = lang.French()
	}
	if opts.Generator == nil {
		opts.Generator = generate.NewLexRank(ingest.NewTokenizer(opts.Profile.Stoplist()))
	}
	if opts.Decoding.Mode == "" {
		opts.Decoding = generate.DefaultDecoding()
	}
	if opts.Budget == nil {
		opts.Budget = FixedBudget(DefaultMaxSentences)
	}
	if opts.MaxPassages <= 0 {
		opts.MaxPassages = retrieve.DefaultMaxPassages
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.MinSentences <= 0 {
		opts.MinSentences = DefaultMinSentences
	}
	if opts.MinLastWords <= 0 {
		opts.MinLastWords = DefaultMinLastWords
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Synthesizer{opts: opts, logger: logger}
}

// Profile returns the language profile in use.
func (s *Synthesizer) Profile() *lang.Profile {
	return s.opts.Profile
}

// Synthesize writes the paragraph for one partition. The "no trend"
// sentinel returns immediately without calling the generator. Choppy
// output is retried with one trend fewer, up to MaxAttempts calls.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) Result {
	p := s.opts.Profile
	if in.Trends.None() {
		return Result{Summary: p.NoIdea, Status: StatusNoTrend}
	}

	trends := in.Trends
	res := Result{Status: StatusFragmented, Summary: p.Fragmented}
	for attempt := 1; attempt <= s.opts.MaxAttempts && len(trends) > 0; attempt++ {
		res.Attempts = attempt
		req := s.Request(in.Sentiment, trends)
		res.Prompt = req.Prompt

		raw, err := s.generate(ctx, req)
		if err != nil {
			s.logger.Warn("generation failed", "class", in.Sentiment, "attempt", attempt, "err", err)
			res.Summary, res.Status = p.NotGenerated, StatusFailed
			return res
		}
		if strings.TrimSpace(raw) == "" {
			s.logger.Warn("generation returned nothing", "class", in.Sentiment, "attempt", attempt)
			res.Summary, res.Status = p.NotGenerated, StatusFailed
			return res
		}

		summary, n := Clean(raw, req.Prompt, req.MaxSentences, s.opts.MinLastWords, p)
		if n >= s.opts.MinSentences {
			res.Summary, res.Status = summary, StatusGenerated
			return res
		}
		s.logger.Info("choppy summary, retrying with fewer trends",
			"class", in.Sentiment, "attempt", attempt, "sentences", n, "trends", len(trends))
		trends = trends[:len(trends)-1]
	}
	return res
}

// Request builds the generation request for a trend list.
func (s *Synthesizer) Request(sentiment review.Sentiment, trends trend.List) generate.Request {
	p := s.opts.Profile
	passages := retrieve.Passages(trends, s.opts.MaxPassages)
	prompt := p.Prompt(s.opts.Template, sentiment, p.Lead(trends.Texts()), strings.Join(passages, "\n"))
	return generate.Request{
		System:       p.System,
		Prompt:       prompt,
		Passages:     passages,
		MaxSentences: s.opts.Budget(len(trends)),
		Decoding:     s.opts.Decoding,
	}
}

func (s *Synthesizer) generate(ctx context.Context, req generate.Request) (out string, err error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("generator panic: %v", r)
		}
	}()
	return s.opts.Generator.Generate(ctx, req)
}
