// Package classify labels reviews with a sentiment class.
package classify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/revtrend/pkg/revtrend/review"
)

// Classifier maps a review text to a sentiment.
type Classifier interface {
	Classify(ctx context.Context, text string) (review.Sentiment, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, text string) (review.Sentiment, error)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, text string) (review.Sentiment, error) {
	return f(ctx, text)
}

// LabelFromStars maps a star-rating label ("1 star" … "5 stars") to a
// sentiment: 4 or 5 is positive, 1 or 2 negative, anything else neutral.
func LabelFromStars(label string) review.Sentiment {
	switch {
	case strings.ContainsAny(label, "45"):
		return review.Positive
	case strings.ContainsAny(label, "12"):
		return review.Negative
	default:
		return review.Neutral
	}
}

// FromPolarity maps a polarity score in [-1, 1] to a sentiment using a
// symmetric dead band.
func FromPolarity(score, threshold float64) review.Sentiment {
	switch {
	case score > threshold:
		return review.Positive
	case score < -threshold:
		return review.Negative
	default:
		return review.Neutral
	}
}

// RunStats summarizes a classification run.
type RunStats struct {
	Input      int
	Classified int
	Failed     int
}

// Run labels every review, keeping input order. A review whose
// classification fails is logged and left out. parallel <= 0 runs one call
// at a time.
func Run(ctx context.Context, c Classifier, reviews []review.Review, parallel int, logger *log.Logger) ([]review.Review, RunStats, error) {
	if logger == nil {
		logger = log.Default()
	}
	if parallel <= 0 {
		parallel = 1
	}

	labels := make([]review.Sentiment, len(reviews))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := range reviews {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := c.Classify(gctx, reviews[i].Text)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				logger.Warn("classification failed, skipping review", "review", reviews[i].ReviewID, "err", err)
				return nil
			}
			labels[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RunStats{}, fmt.Errorf("classify: %w", err)
	}

	out := make([]review.Review, 0, len(reviews))
	for i, r := range reviews {
		if labels[i] == "" {
			continue
		}
		out = append(out, r.WithSentiment(labels[i]))
	}
	stats := RunStats{Input: len(reviews), Classified: len(out), Failed: int(failed.Load())}
	logger.Info("classified reviews", "input", stats.Input, "classified", stats.Classified, "failed", stats.Failed)
	return out, stats, nil
}

// Files names the inputs and outputs of ClassifyFile.
type Files struct {
	Raw        string // 7-column input
	Labelled   string // 8-column output, skipped when empty
	Classified string // 2-column output, skipped when empty
}

// ClassifyFile reads a raw review file, labels it and writes the labelled
// and classified files. Nothing is written when the input is unusable.
func ClassifyFile(ctx context.Context, c Classifier, files Files, parallel int, logger *log.Logger) (RunStats, error) {
	reviews, _, err := review.ReadRawFile(files.Raw, logger)
	if err != nil {
		return RunStats{}, err
	}
	labelled, stats, err := Run(ctx, c, reviews, parallel, logger)
	if err != nil {
		return stats, err
	}

	if files.Labelled != "" {
		if err := writeFile(files.Labelled, labelled, review.WriteLabelled); err != nil {
			return stats, err
		}
	}
	if files.Classified != "" {
		if err := writeFile(files.Classified, labelled, review.WritePairs); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func writeFile(path string, reviews []review.Review, write func(io.Writer, []review.Review) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, reviews); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
