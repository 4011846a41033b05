package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsquote"
)

// Ensure LoggingCompleter implements newsquote.Completer.
var _ newsquote.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with debug logging. Prompts and
// responses are logged by length only: article text routinely exceeds
// thousands of characters.
type LoggingCompleter struct {
	next   newsquote.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next newsquote.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, maxOutputTokens int32) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("model completion",
			"model", c.next.Model(),
			"prompt_length", len(prompt),
			"response_length", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt, maxOutputTokens)
}

// Model delegates to the wrapped completer.
func (c *LoggingCompleter) Model() string { return c.next.Model() }
