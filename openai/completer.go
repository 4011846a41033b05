// Package openai implements newsquote.Completer using the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/newsquote"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is the OpenAI model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// systemPrompt pins the assistant role for structured extraction.
const systemPrompt = "You are a precise information extraction assistant. Always respond with valid JSON only, no prose."

// Ensure Completer implements newsquote.Completer at compile time.
var _ newsquote.Completer = (*Completer)(nil)

// Completer sends prompts to the OpenAI API.
type Completer struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewCompleter creates a new Completer for the given API key.
// An empty model selects DefaultModel.
func NewCompleter(apiKey, model string, temperature float64) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: temperature,
	}
}

// Model returns the model identifier used for requests.
func (c *Completer) Model() string { return c.model }

// Complete sends the prompt and returns the raw response text.
func (c *Completer) Complete(ctx context.Context, prompt string, maxOutputTokens int32) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if maxOutputTokens > 0 {
		req.MaxCompletionTokens = openai.Int(int64(maxOutputTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", classifyErr(err)
	}

	if len(resp.Choices) == 0 {
		return "", newsquote.Errorf(newsquote.EMALFORMED, "openai returned no choices")
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", newsquote.Errorf(newsquote.ESAFETYBLOCK, "openai filtered response")
	}

	text := choice.Message.Content
	if strings.TrimSpace(text) == "" {
		return "", newsquote.Errorf(newsquote.EMALFORMED, "openai returned empty text")
	}
	return text, nil
}

// classifyErr maps OpenAI transport errors to application error codes.
func classifyErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newsquote.Errorf(newsquote.ETIMEOUT, "openai request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429 || strings.EqualFold(apiErr.Code, "rate_limit_exceeded"):
			return newsquote.Errorf(newsquote.ERATELIMIT, "openai rate limited: %s", apiErr.Message)
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return newsquote.Errorf(newsquote.EUNAUTHORIZED, "openai auth failed: %s", apiErr.Message)
		case apiErr.StatusCode >= 500 || strings.EqualFold(apiErr.Code, "server_error"):
			return newsquote.Errorf(newsquote.EUNAVAILABLE, "openai unavailable: %s", apiErr.Message)
		default:
			return newsquote.Errorf(newsquote.EINTERNAL, "openai error %d: %s", apiErr.StatusCode, apiErr.Message)
		}
	}

	return newsquote.Errorf(newsquote.EINTERNAL, "openai request: %v", err)
}
