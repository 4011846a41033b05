// Package gemini implements newsquote.Completer using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/newsquote"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements newsquote.Completer at compile time.
var _ newsquote.Completer = (*Completer)(nil)

// Completer sends prompts to the Gemini API.
type Completer struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient creates a Gemini API client for the given API key.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, newsquote.Errorf(newsquote.EINTERNAL, "gemini client: %v", err)
	}
	return client, nil
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string, temperature float32) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{
		client:      client,
		model:       model,
		temperature: temperature,
	}
}

// Model returns the model identifier used for requests.
func (c *Completer) Model() string { return c.model }

// Complete sends the prompt and returns the raw response text.
func (c *Completer) Complete(ctx context.Context, prompt string, maxOutputTokens int32) (string, error) {
	temp := c.temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if maxOutputTokens > 0 {
		config.MaxOutputTokens = maxOutputTokens
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", classifyErr(err)
	}
	if result == nil {
		return "", newsquote.Errorf(newsquote.EMALFORMED, "gemini returned nil result")
	}
	if reason, blocked := blockReason(result); blocked {
		return "", newsquote.Errorf(newsquote.ESAFETYBLOCK, "gemini blocked response: %s", reason)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", newsquote.Errorf(newsquote.EMALFORMED, "gemini returned empty text")
	}
	return text, nil
}

// classifyErr maps Gemini transport errors to application error codes.
func classifyErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newsquote.Errorf(newsquote.ETIMEOUT, "gemini request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED":
			return newsquote.Errorf(newsquote.ERATELIMIT, "gemini rate limited: %s", apiErr.Message)
		case apiErr.Code >= 500:
			return newsquote.Errorf(newsquote.EUNAVAILABLE, "gemini unavailable: %s", apiErr.Message)
		default:
			return newsquote.Errorf(newsquote.EINTERNAL, "gemini error %d: %s", apiErr.Code, apiErr.Message)
		}
	}

	return newsquote.Errorf(newsquote.EINTERNAL, "gemini request: %v", err)
}

// blockReason reports whether the response was withheld for policy
// reasons, either at the prompt or at the candidate level.
func blockReason(result *genai.GenerateContentResponse) (string, bool) {
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return string(result.PromptFeedback.BlockReason), true
	}
	for _, cand := range result.Candidates {
		if cand != nil && cand.FinishReason == genai.FinishReasonSafety {
			return string(cand.FinishReason), true
		}
	}
	return "", false
}
