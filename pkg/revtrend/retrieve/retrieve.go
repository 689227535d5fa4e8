// Package retrieve finds review passages that support a trend.
package retrieve

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/cognicore/revtrend/pkg/revtrend/trend"
)

// DefaultMaxPassages caps the passages handed to one summary.
const DefaultMaxPassages = 10

// Retriever returns supporting passages for a trend phrase. No passage is an
// expected outcome, reported as an empty slice and a nil error.
type Retriever interface {
	Retrieve(ctx context.Context, phrase string) ([]string, error)
}

// Attach fills the Evidence of each trend. Retrieval errors are logged and
// leave that trend without evidence.
func Attach(ctx context.Context, r Retriever, trends trend.List, logger *log.Logger) trend.List {
	if logger == nil {
		logger = log.Default()
	}
	out := trends.Clone()
	for i := range out {
		if ctx.Err() != nil {
			break
		}
		passages, err := r.Retrieve(ctx, out[i].Text)
		if err != nil {
			logger.Warn("evidence retrieval failed", "trend", out[i].Text, "err", err)
			continue
		}
		out[i].Evidence = passages
	}
	return out
}

// Passages flattens the evidence of trends in order, dropping duplicates and
// stopping at max passages (max <= 0 keeps all).
func Passages(trends trend.List, max int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range trends {
		for _, p := range t.Evidence {
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
			if max > 0 && len(out) == max {
				return out
			}
		}
	}
	return out
}
