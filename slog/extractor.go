// Package slog provides logging decorators for newsquote services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsquote"
)

// Ensure LoggingExtractor implements newsquote.Extractor.
var _ newsquote.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   newsquote.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next newsquote.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, url string) (content *newsquote.PageContent, err error) {
	defer func(begin time.Time) {
		length := 0
		if content != nil {
			length = len(content.Text)
		}
		e.logger.Debug("extract page",
			"extractor", e.next.Name(),
			"url", url,
			"length", length,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, url)
}

// Name delegates to the wrapped extractor.
func (e *LoggingExtractor) Name() string { return e.next.Name() }
