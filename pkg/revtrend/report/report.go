// Package report renders the trend report.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cognicore/revtrend/pkg/revtrend/lang"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

// ClassReport is the outcome of one sentiment partition.
type ClassReport struct {
	Sentiment review.Sentiment
	Count     int
	Summary   string
	Trends    trend.List
}

// Report is the outcome of a run, classes in report order.
type Report struct {
	Total   int
	Classes []ClassReport
}

// Class returns the report of one sentiment.
func (r Report) Class(s review.Sentiment) (ClassReport, bool) {
	for _, c := range r.Classes {
		if c.Sentiment == s {
			return c, true
		}
	}
	return ClassReport{}, false
}

// Percent returns the share of reviews in class s, 0 when there are none.
func (r Report) Percent(s review.Sentiment) float64 {
	if r.Total == 0 {
		return 0
	}
	c, _ := r.Class(s)
	return float64(c.Count) / float64(r.Total) * 100
}

// Options controls rendering.
type Options struct {
	Profile      *lang.Profile
	ShowEvidence bool // append the first evidence passage to each trend
}

// Render writes the report: the distribution header, then per class the
// summary paragraph and the bulleted trends. An empty trend list renders the
// "no trend detected" bullet.
func Render(w io.Writer, r Report, opts Options) error {
	p := opts.Profile
	if p == nil {
		p = lang.French()
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, p.Labels.Distribution)
	for _, s := range review.Sentiments {
		c, _ := r.Class(s)
		fmt.Fprintf(bw, "%s"+p.Labels.Count+"\n", p.Labels.Class[s], c.Count, r.Percent(s))
	}
	fmt.Fprintln(bw)

	for _, s := range review.Sentiments {
		c, ok := r.Class(s)
		if !ok {
			c = ClassReport{Sentiment: s, Summary: p.NoIdea}
		}
		fmt.Fprintf(bw, p.Labels.Synthesis+"\n", p.Plural[s])
		fmt.Fprintf(bw, "%s\n\n", c.Summary)
		fmt.Fprintf(bw, p.Labels.Trends+"\n", p.Singular[s])
		if c.Trends.None() {
			fmt.Fprintf(bw, "- %s\n", p.NoTrend)
		}
		for _, t := range c.Trends {
			if opts.ShowEvidence && t.HasEvidence() {
				fmt.Fprintf(bw, "- %s (%s)\n", t.Text, t.Evidence[0])
				continue
			}
			fmt.Fprintf(bw, "- %s\n", t.Text)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
