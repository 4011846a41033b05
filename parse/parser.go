// Package parse orchestrates the AI parsing stage: it turns extraction
// records into structured quote rows through a language-model provider,
// degrading to the empty result on per-record failures so one bad article
// never aborts a batch.
package parse

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/retry"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 60 * time.Second

// Parser extracts structured quote data from one article's text.
type Parser struct {
	// Completer is the language-model backend.
	Completer newsquote.Completer

	// Gate paces consecutive model calls. Shared across workers.
	Gate newsquote.Gate

	// Retry bounds attempts per record.
	Retry retry.Policy

	// MaxContent caps the article characters sent per prompt.
	// Zero means DefaultMaxContent.
	MaxContent int

	// Timeout bounds a single model call. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxOutputTokens caps the response length. Zero leaves it to the
	// provider default.
	MaxOutputTokens int32

	Logger *slog.Logger
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Parser) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

// classify maps provider failures to retry outcomes. Safety blocks are
// deterministic, so retrying them only burns quota.
func classify(err error) retry.Class {
	switch newsquote.ErrorCode(err) {
	case newsquote.ERATELIMIT, newsquote.ETIMEOUT, newsquote.EUNAVAILABLE, newsquote.EMALFORMED:
		return retry.Retryable
	}
	return retry.Fatal
}

// Parse extracts quotes from one record. Every degradation path (provider
// failure, safety block, undecodable response) returns the empty result;
// an error is returned only when the context is canceled.
func (p *Parser) Parse(ctx context.Context, rec *newsquote.ExtractionRecord) (*newsquote.StructuredResult, error) {
	if rec.Empty() {
		return newsquote.EmptyResult(), nil
	}

	if p.Gate != nil {
		if err := p.Gate.Wait(ctx); err != nil {
			return nil, err
		}
	}

	prompt := BuildPrompt(rec.Content, p.MaxContent)

	raw, err := retry.Do(ctx, p.Retry, classify,
		func(ctx context.Context) (string, error) {
			callCtx, cancel := context.WithTimeout(ctx, p.timeout())
			defer cancel()
			return p.Completer.Complete(callCtx, prompt, p.MaxOutputTokens)
		})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger().Warn("model call failed",
			"id", rec.ID,
			"model", p.Completer.Model(),
			"exhausted", retry.Exhausted(err),
			"code", newsquote.ErrorCode(err),
			"error", newsquote.ErrorMessage(err))
		return newsquote.EmptyResult(), nil
	}

	result, ok := decode(raw)
	if !ok {
		p.logger().Warn("undecodable model response", "id", rec.ID, "model", p.Completer.Model())
		return newsquote.EmptyResult(), nil
	}

	result.Normalize()
	return result, nil
}

// decode repairs and unmarshals the model's response.
func decode(raw string) (*newsquote.StructuredResult, bool) {
	repaired := RepairJSON(raw)
	if repaired == "" {
		return nil, false
	}

	var result newsquote.StructuredResult
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, false
	}
	return &result, true
}
