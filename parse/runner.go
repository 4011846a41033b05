package parse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/newsquote"
	"golang.org/x/sync/errgroup"
)

// DefaultCheckpointEvery is how many records complete between checkpoint
// calls.
const DefaultCheckpointEvery = 100

// Result holds the outcome of a parsing batch.
type Result struct {
	Total   int // records processed
	Parsed  int // records yielding at least one row
	Empty   int // records yielding no rows (failures included)
	Skipped int // records with no content, never sent to the model
	Rows    int // total rows produced
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFinished
)

// ProgressEvent reports progress during a parsing batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ID        string
	Rows      int
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// CheckpointFunc persists the rows produced so far. It receives rows for
// the contiguous prefix of completed records, in input order; persistence
// is expected to upsert by position.
type CheckpointFunc func(ctx context.Context, rows []newsquote.ParsedRow) error

// Runner fans a batch of extraction records across a bounded worker pool
// and reassembles the rows in input order.
type Runner struct {
	Parser *Parser

	// Threads is the worker pool size. Values below 1 mean sequential.
	Threads int

	// Checkpoint, if set, is called as contiguous prefixes of the batch
	// complete, at least every CheckpointEvery records.
	Checkpoint      CheckpointFunc
	CheckpointEvery int

	Logger *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Run parses all records and returns their rows concatenated in input
// order. Output order is deterministic regardless of worker scheduling.
// Returns an error only when the context is canceled.
func (r *Runner) Run(ctx context.Context, recs []*newsquote.ExtractionRecord, progress ProgressFunc) (*Result, []newsquote.ParsedRow, error) {
	threads := r.Threads
	if threads < 1 {
		threads = 1
	}
	checkpointEvery := r.CheckpointEvery
	if checkpointEvery <= 0 {
		checkpointEvery = DefaultCheckpointEvery
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(recs)})
	}

	results := make([][]newsquote.ParsedRow, len(recs))

	var mu sync.Mutex
	done := make([]bool, len(recs))
	frontier := 0       // records [0, frontier) are complete
	lastCheckpoint := 0 // frontier value at the previous checkpoint
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, rec := range recs {
		g.Go(func() error {
			result, err := r.Parser.Parse(gctx, rec)
			if err != nil {
				return err
			}
			rows := result.Rows(rec.ID, rec.DateArticle, rec.SourceURL)

			mu.Lock()
			results[i] = rows
			done[i] = true
			completed++
			for frontier < len(recs) && done[frontier] {
				frontier++
			}
			shouldCheckpoint := r.Checkpoint != nil && frontier-lastCheckpoint >= checkpointEvery
			var prefix []newsquote.ParsedRow
			if shouldCheckpoint {
				lastCheckpoint = frontier
				prefix = concat(results[:frontier])
			}
			completedNow := completed
			mu.Unlock()

			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: completedNow,
					Total:     len(recs),
					ID:        rec.ID,
					Rows:      len(rows),
				})
			}

			if shouldCheckpoint {
				if err := r.Checkpoint(gctx, prefix); err != nil {
					r.logger().Warn("checkpoint failed", "rows", len(prefix), "error", err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	allRows := concat(results)

	if r.Checkpoint != nil && lastCheckpoint < len(recs) {
		if err := r.Checkpoint(ctx, allRows); err != nil {
			r.logger().Warn("checkpoint failed", "rows", len(allRows), "error", err)
		}
	}

	result := &Result{Total: len(recs), Rows: len(allRows)}
	for i, rec := range recs {
		switch {
		case rec.Empty():
			result.Skipped++
		case len(results[i]) > 0:
			result.Parsed++
		default:
			result.Empty++
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(recs), Total: len(recs)})
	}

	return result, allRows, nil
}

func concat(groups [][]newsquote.ParsedRow) []newsquote.ParsedRow {
	var n int
	for _, g := range groups {
		n += len(g)
	}
	rows := make([]newsquote.ParsedRow, 0, n)
	for _, g := range groups {
		rows = append(rows, g...)
	}
	return rows
}
