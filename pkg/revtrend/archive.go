package revtrend

import (
	"context"
	"fmt"

	"github.com/cognicore/revtrend/pkg/revtrend/report"
	"github.com/cognicore/revtrend/pkg/revtrend/review"
	"github.com/cognicore/revtrend/pkg/revtrend/store"
)

// FileResult is the outcome of RunFile.
type FileResult struct {
	Report report.Report
	Stats  review.ReadStats
	RunID  string // empty when no archive is configured or saving failed
}

// RunFile reads a classified review file, runs the pipeline and archives the
// run when a store is configured. Unreadable input is fatal; malformed lines
// are logged and skipped.
func (e *Engine) RunFile(ctx context.Context, path string) (FileResult, error) {
	e.logger.Info("loading", "path", path)
	started := e.now()
	reviews, stats, err := review.ReadClassifiedFile(path, e.logger)
	if err != nil {
		return FileResult{}, fmt.Errorf("load %s: %w", path, err)
	}
	if stats.Skipped > 0 {
		e.logger.Warn("skipped malformed lines", "path", path, "skipped", stats.Skipped)
	}

	rep, runs, err := e.run(ctx, reviews)
	if err != nil {
		return FileResult{}, err
	}
	res := FileResult{Report: rep, Stats: stats}

	if e.store != nil {
		run := store.Run{
			ID:        store.NewRunID(started),
			Input:     path,
			StartedAt: started,
			Total:     rep.Total,
			Skipped:   stats.Skipped,
		}
		for _, cr := range runs {
			run.Partitions = append(run.Partitions, partitionRecord(cr))
		}
		if err := e.store.SaveRun(ctx, run); err != nil {
			e.logger.Warn("archive failed", "run", run.ID, "err", err)
		} else {
			res.RunID = run.ID
			e.logger.Info("archived run", "run", run.ID)
		}
	}
	return res, nil
}

func partitionRecord(cr *classRun) store.PartitionRecord {
	rec := store.PartitionRecord{
		Sentiment: string(cr.sentiment),
		Count:     len(cr.texts),
		Summary:   cr.result.Summary,
		Status:    string(cr.result.Status),
	}
	for _, t := range cr.trends {
		rec.Trends = append(rec.Trends, store.TrendRecord{
			Text:     t.Text,
			Support:  t.Support,
			Evidence: append([]string(nil), t.Evidence...),
		})
	}
	return rec
}
