// Package revtrend is the review trend engine: it partitions labelled
// reviews by sentiment, extracts and refines recurring phrases per
// partition, gathers supporting passages and writes one summary per class.
package revtrend

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/revtrend/pkg/revtrend/analytics"
	"github.com/cognicore/revtrend/pkg/revtrend/config"
	"github.com/cognicore/revtrend/pkg/revtrend/embed"
	"github.com/cognicore/revtrend/pkg/revtrend/ingest"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
	"github.com/cognicore/revtrend/pkg/revtrend/keyphrase"
	"github.com/cognicore/revtrend/pkg/revtrend/lang"
	"github.com/cognicore/revtrend/pkg/revtrend/refine"
	"github.com/cognicore/revtrend/pkg/revtrend/report"
	"github.com/cognicore/revtrend/pkg/revtrend/retrieve"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
	"github.com/cognicore/revtrend/pkg/revtrend/store"
	"github.com/cognicore/revtrend/pkg/revtrend/synth"
	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

// DefaultParallel is the number of partitions processed at once.
const DefaultParallel = 3

// Engine is the pipeline facade. It holds read-only components and can run
// several times; per-run resources such as the chunk index are created and
// released inside Run.
type Engine struct {
	profile    *lang.Profile
	candidates *keyphrase.Union
	selection  analytics.Options
	refiner    *refine.Refiner
	evidence   EvidenceOptions
	embedder   embed.Embedder
	synth      *synth.Synthesizer
	store      store.Store
	parallel   int
	logger     *log.Logger
	now        func() time.Time
}

// EvidenceOptions selects how passages are found for trends.
type EvidenceOptions struct {
	Strategy      string // config.EvidenceNone, EvidenceExact or EvidenceSemantic
	Scope         string // config.ScopePartition (default) or ScopeCorpus
	Window        int
	TopK          int
	ChunkMinWords int

	// Retriever, when set, is used for every partition instead of Strategy.
	Retriever retrieve.Retriever
}

// Options configures an Engine. Zero fields take defaults built from the
// language profile.
type Options struct {
	Profile     *lang.Profile
	Tokenizer   *ingest.Tokenizer
	Embedder    embed.Embedder
	Extractors  []keyphrase.Extractor
	Candidates  keyphrase.Options
	Selection   analytics.Options
	Refiner     *refine.Refiner
	Evidence    EvidenceOptions
	Synthesizer *synth.Synthesizer
	Store       store.Store // optional run archive
	Parallel    int
	Logger      *log.Logger
	Now         func() time.Time
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	profile := opts.Profile
	if profile == nil {
		profile = lang.French()
	}
	tok := opts.Tokenizer
	if tok == nil {
		tok = ingest.NewTokenizer(profile.Stoplist())
	}
	embedder := opts.Embedder
	if embedder == nil {
		embedder = embed.NewHashing(0, profile.Snowball, tok)
	}

	extractors := opts.Extractors
	if extractors == nil {
		extractors = []keyphrase.Extractor{
			keyphrase.NewTextRank(tok, keyphrase.TextRankOptions{}),
			keyphrase.NewEmbeddingExtractor(embedder, tok, keyphrase.EmbeddingOptions{}),
		}
	}
	candOpts := opts.Candidates
	if candOpts.MinWords == 0 && candOpts.MaxWords == 0 {
		candOpts = keyphrase.DefaultOptions()
	}
	if candOpts.Logger == nil {
		candOpts.Logger = logger
	}

	selection := opts.Selection
	if selection.TopN == 0 && selection.MinCount == 0 {
		def := analytics.DefaultOptions()
		def.Blacklist = selection.Blacklist
		selection = def
	}

	refiner := opts.Refiner
	if refiner == nil {
		refiner = refine.New(refine.Options{
			Tokenizer:  tok,
			Tagger:     profile.Tagger(),
			Similarity: refine.NewLexical(profile.Snowball, tok),
			Blacklist:  selection.Blacklist,
			Logger:     logger,
		})
	}

	ev := opts.Evidence
	if ev.Strategy == "" {
		ev.Strategy = config.EvidenceExact
	}
	if ev.Scope == "" {
		ev.Scope = config.ScopePartition
	}
	if ev.Window <= 0 {
		ev.Window = retrieve.DefaultWindow
	}

	synthesizer := opts.Synthesizer
	if synthesizer == nil {
		synthesizer = synth.New(synth.Options{Profile: profile, Logger: logger})
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		profile:    profile,
		candidates: keyphrase.NewUnion(candOpts, extractors...),
		selection:  selection,
		refiner:    refiner,
		evidence:   ev,
		embedder:   embedder,
		synth:      synthesizer,
		store:      opts.Store,
		parallel:   parallel,
		logger:     logger,
		now:        now,
	}
}

// Close releases the run archive, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Profile returns the language profile used for messages and rendering.
func (e *Engine) Profile() *lang.Profile {
	return e.profile
}

// classRun carries one partition through the stages.
type classRun struct {
	sentiment review.Sentiment
	texts     []string
	trends    trend.List
	result    synth.Result
}

// Run executes the pipeline over labelled reviews. Only an empty input is
// fatal; a partition that fails ends with the "no trend" sentinel or a
// placeholder summary.
func (e *Engine) Run(ctx context.Context, reviews []review.Review) (report.Report, error) {
	rep, _, err := e.run(ctx, reviews)
	return rep, err
}

func (e *Engine) run(ctx context.Context, reviews []review.Review) (report.Report, []*classRun, error) {
	if len(reviews) == 0 {
		return report.Report{}, nil, fmt.Errorf("run: %w", internalerr.ErrNoInput)
	}

	e.logger.Info("partitioning", "reviews", len(reviews))
	parts := review.Partition(reviews)
	runs := make([]*classRun, len(review.Sentiments))
	for i, s := range review.Sentiments {
		runs[i] = &classRun{sentiment: s, texts: parts.Texts(s)}
		e.logger.Debug("partition", "class", s, "reviews", len(runs[i].texts))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for _, cr := range runs {
		g.Go(func() error {
			cr.trends = e.selectTrends(gctx, cr.sentiment, cr.texts)
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return report.Report{}, nil, err
	}

	e.attachEvidence(ctx, reviews, runs)

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for _, cr := range runs {
		g.Go(func() error {
			e.logger.Info("synthesizing", "class", cr.sentiment, "trends", len(cr.trends))
			cr.result = e.synth.Synthesize(gctx, synth.Input{Sentiment: cr.sentiment, Trends: cr.trends})
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return report.Report{}, nil, err
	}

	e.logger.Info("rendering")
	rep := report.Report{Total: parts.Total()}
	for _, cr := range runs {
		rep.Classes = append(rep.Classes, report.ClassReport{
			Sentiment: cr.sentiment,
			Count:     len(cr.texts),
			Summary:   cr.result.Summary,
			Trends:    cr.trends,
		})
	}
	return rep, runs, nil
}

// selectTrends runs extraction, aggregation and refinement for one
// partition. An empty result is the "no trend detected" sentinel.
func (e *Engine) selectTrends(ctx context.Context, s review.Sentiment, texts []string) trend.List {
	if len(texts) == 0 {
		e.logger.Info("empty partition", "class", s)
		return nil
	}

	e.logger.Info("extracting", "class", s, "reviews", len(texts))
	phrases := make([][]string, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for i, text := range texts {
		g.Go(func() error {
			phrases[i] = e.candidates.Phrases(gctx, i, ingest.Normalize(text))
			return nil
		})
	}
	g.Wait()

	e.logger.Info("aggregating", "class", s)
	agg := analytics.NewAggregator()
	for _, p := range phrases {
		agg.Process(p)
	}
	top := agg.Top(e.selection)
	if top.None() {
		e.logger.Info("no trend detected", "class", s, "phrases", agg.Snapshot().Distinct)
		return nil
	}

	e.logger.Info("refining", "class", s, "candidates", len(top))
	refined, err := e.refiner.Refine(ctx, top)
	if err != nil {
		e.logger.Warn("refinement interrupted", "class", s, "err", err)
		return nil
	}
	if refined.None() {
		e.logger.Info("no trend survived refinement", "class", s)
	}
	return refined
}

// attachEvidence fills trend evidence. Partitions holding the sentinel are
// never searched, and no index is built when every partition holds it.
func (e *Engine) attachEvidence(ctx context.Context, reviews []review.Review, runs []*classRun) {
	var pending []*classRun
	for _, cr := range runs {
		if !cr.trends.None() {
			pending = append(pending, cr)
		}
	}
	if len(pending) == 0 || (e.evidence.Strategy == config.EvidenceNone && e.evidence.Retriever == nil) {
		return
	}

	var shared retrieve.Retriever = e.evidence.Retriever
	if shared == nil && e.evidence.Scope == config.ScopeCorpus {
		corpus := make([]string, len(reviews))
		for i, r := range reviews {
			corpus[i] = r.Text
		}
		r, release, err := e.retriever(ctx, corpus)
		if err != nil {
			e.logger.Warn("evidence index unavailable", "scope", config.ScopeCorpus, "err", err)
			return
		}
		defer release()
		shared = r
	}

	for _, cr := range pending {
		e.logger.Info("retrieving", "class", cr.sentiment, "strategy", e.evidence.Strategy)
		r := shared
		if r == nil {
			pr, release, err := e.retriever(ctx, cr.texts)
			if err != nil {
				e.logger.Warn("evidence index unavailable", "class", cr.sentiment, "err", err)
				continue
			}
			cr.trends = retrieve.Attach(ctx, pr, cr.trends, e.logger)
			release()
			continue
		}
		cr.trends = retrieve.Attach(ctx, r, cr.trends, e.logger)
	}
}

func (e *Engine) retriever(ctx context.Context, texts []string) (retrieve.Retriever, func(), error) {
	switch e.evidence.Strategy {
	case config.EvidenceSemantic:
		sem := retrieve.NewSemantic(e.embedder, retrieve.SemanticOptions{
			TopK:          e.evidence.TopK,
			ChunkMinWords: e.evidence.ChunkMinWords,
			Logger:        e.logger,
		})
		if err := sem.Build(ctx, texts); err != nil {
			return nil, nil, err
		}
		return sem, sem.Close, nil
	default:
		return retrieve.NewExact(texts, e.evidence.Window), func() {}, nil
	}
}
