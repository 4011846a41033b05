// Package extract orchestrates the content retrieval stage: it walks a
// batch of article URLs through an ordered chain of extractors, follows
// multi-page articles, and produces exactly one ExtractionRecord per input.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/bloom"
	"github.com/fwojciec/newsquote/retry"
)

// DefaultMinFallbackLen is the minimum text length a fallback extractor
// must produce to be accepted. Local extractors degrade by returning
// navigation scraps rather than failing, so short output is treated as
// failure and the chain moves on.
const DefaultMinFallbackLen = 100

// DefaultCheckpointEvery is how many records accumulate between
// checkpoint calls.
const DefaultCheckpointEvery = 100

// dedupExpectedURLs sizes the batch deduplication filter.
const (
	dedupExpectedURLs      = 100000
	dedupFalsePositiveRate = 0.001
)

// Result holds the outcome of an extraction batch.
type Result struct {
	Total      int // records produced (equals input count)
	Succeeded  int // records with content
	Empty      int // records with no content
	Duplicates int // inputs resolved from an earlier input's content
	Pages      int // total pages fetched
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during an extraction batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Err       error
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// CheckpointFunc persists the records produced so far. It receives the
// full prefix; persistence is expected to upsert by position.
type CheckpointFunc func(ctx context.Context, recs []*newsquote.ExtractionRecord) error

// Runner drives the extraction stage. Inputs are processed sequentially:
// news sites and the extraction API both rate limit aggressively, so the
// batch trades speed for not getting blocked.
type Runner struct {
	// Extractors is the ordered chain: primary first, fallbacks after.
	Extractors []newsquote.Extractor

	// Paginators selects the pagination strategy per site.
	Paginators newsquote.PaginatorRegistry

	// URLGate paces consecutive articles; PageGate paces consecutive
	// pages of one article.
	URLGate  newsquote.Gate
	PageGate newsquote.Gate

	// Retry bounds attempts per extractor per page.
	Retry retry.Policy

	// MaxPages caps the pagination walk per article.
	MaxPages int

	// MinFallbackLen is the acceptance threshold for fallback extractors.
	// Zero means DefaultMinFallbackLen.
	MinFallbackLen int

	// Checkpoint, if set, is called every CheckpointEvery records.
	Checkpoint      CheckpointFunc
	CheckpointEvery int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Runner) minFallbackLen() int {
	if r.MinFallbackLen <= 0 {
		return DefaultMinFallbackLen
	}
	return r.MinFallbackLen
}

// classify maps extractor failures to retry outcomes. Transient upstream
// conditions are retried; everything else falls through to the next
// extractor immediately.
func classify(err error) retry.Class {
	switch newsquote.ErrorCode(err) {
	case newsquote.EUNAVAILABLE, newsquote.ETIMEOUT, newsquote.ERATELIMIT:
		return retry.Retryable
	}
	return retry.Fatal
}

// fetched is the per-URL outcome cached for duplicate inputs.
type fetched struct {
	content string
	pages   int
	method  string
}

// Run processes the batch sequentially and returns one record per input,
// in input order. It returns an error only when the context is canceled;
// per-article failures yield empty records.
func (r *Runner) Run(ctx context.Context, inputs []newsquote.ArticleInput, progress ProgressFunc) (*Result, []*newsquote.ExtractionRecord, error) {
	result := &Result{Total: len(inputs)}
	records := make([]*newsquote.ExtractionRecord, 0, len(inputs))

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(inputs)})
	}

	dedup := bloom.NewDedup(dedupExpectedURLs, dedupFalsePositiveRate)
	cache := make(map[string]fetched)

	checkpointEvery := r.CheckpointEvery
	if checkpointEvery <= 0 {
		checkpointEvery = DefaultCheckpointEvery
	}

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		rec := &newsquote.ExtractionRecord{
			ID:            input.ID,
			DateArticle:   input.Date,
			IngestionTime: r.now(),
			SourceURL:     input.SourceURL,
		}

		if dedup.Seen(input.SourceURL) {
			if hit, ok := cache[input.SourceURL]; ok {
				rec.Content = hit.content
				rec.Pages = hit.pages
				rec.Method = hit.method
				result.Duplicates++
				records = append(records, rec)
				r.report(progress, rec, i+1, len(inputs), result)
				continue
			}
			// Bloom false positive: fall through and fetch normally.
		}

		if i > 0 && r.URLGate != nil {
			if err := r.URLGate.Wait(ctx); err != nil {
				return nil, nil, err
			}
		}

		if err := r.fetchArticle(ctx, input.SourceURL, rec); err != nil {
			return nil, nil, err
		}

		cache[input.SourceURL] = fetched{content: rec.Content, pages: rec.Pages, method: rec.Method}
		result.Pages += rec.Pages
		records = append(records, rec)
		r.report(progress, rec, i+1, len(inputs), result)

		if r.Checkpoint != nil && len(records)%checkpointEvery == 0 {
			if err := r.Checkpoint(ctx, records); err != nil {
				r.logger().Warn("checkpoint failed", "records", len(records), "error", err)
			}
		}
	}

	if r.Checkpoint != nil && len(records)%checkpointEvery != 0 {
		if err := r.Checkpoint(ctx, records); err != nil {
			r.logger().Warn("checkpoint failed", "records", len(records), "error", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(inputs), Total: len(inputs)})
	}

	return result, records, nil
}

func (r *Runner) report(progress ProgressFunc, rec *newsquote.ExtractionRecord, completed, total int, result *Result) {
	if rec.Empty() {
		result.Empty++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     total,
				URL:       rec.SourceURL,
				Err:       newsquote.Errorf(newsquote.EUNAVAILABLE, "no content extracted"),
			})
		}
		return
	}
	result.Succeeded++
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       rec.SourceURL,
		})
	}
}

// fetchArticle walks one article's pages and fills in the record's
// content fields. A failure on page one leaves the record empty; a
// failure on a later page keeps the pages already retrieved. Returns an
// error only on context cancellation.
func (r *Runner) fetchArticle(ctx context.Context, sourceURL string, rec *newsquote.ExtractionRecord) error {
	maxPages := r.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	paginator := r.Paginators.ForURL(sourceURL)

	var texts []string
	visited := map[string]bool{sourceURL: true}
	seenHashes := make(map[uint64]bool)

	pageURL := sourceURL
	for page := 1; page <= maxPages; page++ {
		if page > 1 && r.PageGate != nil {
			if err := r.PageGate.Wait(ctx); err != nil {
				return err
			}
		}

		content := r.extractPage(ctx, pageURL, page)
		if content == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			break
		}

		// Sites that synthesize page URLs echo the last real page forever.
		hash := xxhash.Sum64String(content.Text)
		if seenHashes[hash] {
			r.logger().Debug("duplicate page content, stopping pagination", "url", pageURL, "page", page)
			break
		}
		seenHashes[hash] = true

		texts = append(texts, content.Text)
		if page == 1 {
			rec.Method = content.Method
		}

		next, ok := paginator.NextPage(pageURL, page, content.HTML)
		if !ok {
			break
		}
		if visited[next] {
			break
		}
		visited[next] = true
		pageURL = next
	}

	rec.Content = strings.Join(texts, newsquote.PageBreak)
	rec.Pages = len(texts)
	return nil
}

// extractPage runs the extractor chain for one page. Each extractor gets
// its own retry budget; fatal failures and exhausted retries both fall
// through to the next extractor. Returns nil when every extractor failed.
func (r *Runner) extractPage(ctx context.Context, pageURL string, page int) *newsquote.PageContent {
	for i, extractor := range r.Extractors {
		content, err := retry.Do(ctx, r.Retry, classify,
			func(ctx context.Context) (*newsquote.PageContent, error) {
				return extractor.Extract(ctx, pageURL)
			})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger().Warn("extractor failed",
				"extractor", extractor.Name(),
				"url", pageURL,
				"page", page,
				"exhausted", retry.Exhausted(err),
				"code", newsquote.ErrorCode(err),
				"error", newsquote.ErrorMessage(err))
			continue
		}

		// Fallback extractors returning near-empty text degraded silently.
		if i > 0 && len(strings.TrimSpace(content.Text)) <= r.minFallbackLen() {
			r.logger().Warn("fallback content too short",
				"extractor", extractor.Name(),
				"url", pageURL,
				"length", len(content.Text))
			continue
		}

		return content
	}
	return nil
}
