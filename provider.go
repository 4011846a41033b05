package newsquote

import "context"

// Completer is a provider-agnostic interface over a language-model
// backend. Each implementation constructs its own request shape and
// unwraps its own response format, but all expose a uniform error
// classification through application error codes:
//
//	ERATELIMIT   provider asked us to slow down (retryable)
//	ETIMEOUT     the call exceeded its deadline (retryable)
//	ESAFETYBLOCK provider refused for policy reasons (not an operational
//	             failure: callers map it to the empty result, no retry)
//	EMALFORMED   provider returned an unusable response
//	EINTERNAL    anything else
type Completer interface {
	// Complete sends the prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string, maxOutputTokens int32) (string, error)

	// Model returns the model identifier used for requests.
	Model() string
}
