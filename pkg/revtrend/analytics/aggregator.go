// Package analytics counts candidate phrases across a partition and selects
// the most frequent ones.
package analytics

import (
	"sort"

	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

// Selection defaults.
const (
	DefaultTopN     = 20
	DefaultMinCount = 3
)

// Options controls frequency selection.
type Options struct {
	TopN      int // <= 0 keeps every phrase above MinCount
	MinCount  int
	Blacklist []string // exact phrases never selected
}

// DefaultOptions returns top 20 phrases seen at least 3 times.
func DefaultOptions() Options {
	return Options{TopN: DefaultTopN, MinCount: DefaultMinCount}
}

// Aggregator accumulates candidate phrase counts for one partition.
// It is not safe for concurrent use; each partition owns one.
type Aggregator struct {
	totalDocs int64
	counts    map[string]int64
	docFreq   map[string]int64
	first     map[string]int
	order     int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		counts:  make(map[string]int64),
		docFreq: make(map[string]int64),
		first:   make(map[string]int),
	}
}

// Process consumes one review's candidate phrases. Every occurrence counts,
// including the same phrase proposed by two extractors.
func (a *Aggregator) Process(phrases []string) {
	a.totalDocs++

	seen := make(map[string]struct{})
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if _, ok := a.first[p]; !ok {
			a.first[p] = a.order
			a.order++
		}
		a.counts[p]++
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		a.docFreq[p]++
	}
}

// Phrase is a counted candidate.
type Phrase struct {
	Text    string
	Count   int64
	DocFreq int64
}

// Ranked returns every phrase ordered by count descending, ties by first
// occurrence.
func (a *Aggregator) Ranked() []Phrase {
	out := make([]Phrase, 0, len(a.counts))
	for text, c := range a.counts {
		out = append(out, Phrase{Text: text, Count: c, DocFreq: a.docFreq[text]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return a.first[out[i].Text] < a.first[out[j].Text]
	})
	return out
}

// Top selects phrases seen at least MinCount times, skipping blacklisted
// phrases, capped at TopN. An empty result is the "no trend detected"
// sentinel.
func (a *Aggregator) Top(opts Options) trend.List {
	blocked := make(map[string]struct{}, len(opts.Blacklist))
	for _, b := range opts.Blacklist {
		blocked[b] = struct{}{}
	}

	var out trend.List
	for _, p := range a.Ranked() {
		if p.Count < int64(opts.MinCount) {
			break
		}
		if _, ok := blocked[p.Text]; ok {
			continue
		}
		out = append(out, trend.Trend{Text: p.Text, Support: int(p.Count)})
		if opts.TopN > 0 && len(out) == opts.TopN {
			break
		}
	}
	return out
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalDocs int64
	Distinct  int
	Counts    map[string]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Aggregator) Snapshot() Stats {
	counts := make(map[string]int64, len(a.counts))
	for p, c := range a.counts {
		counts[p] = c
	}
	return Stats{TotalDocs: a.totalDocs, Distinct: len(a.counts), Counts: counts}
}
