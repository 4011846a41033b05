package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/newsquote"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
)

func TestClassifyErr(t *testing.T) {
	t.Parallel()

	t.Run("deadline maps to timeout", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(context.DeadlineExceeded)
		assert.Equal(t, newsquote.ETIMEOUT, newsquote.ErrorCode(err))
	})

	t.Run("cancellation passes through", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(context.Canceled)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("429 maps to rate limit", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(&openai.Error{StatusCode: 429, Message: "rate limit exceeded"})
		assert.Equal(t, newsquote.ERATELIMIT, newsquote.ErrorCode(err))
	})

	t.Run("rate_limit_exceeded code maps to rate limit", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(&openai.Error{StatusCode: 400, Code: "rate_limit_exceeded"})
		assert.Equal(t, newsquote.ERATELIMIT, newsquote.ErrorCode(err))
	})

	t.Run("401 maps to unauthorized", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(&openai.Error{StatusCode: 401, Message: "invalid api key"})
		assert.Equal(t, newsquote.EUNAUTHORIZED, newsquote.ErrorCode(err))
	})

	t.Run("5xx maps to unavailable", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(&openai.Error{StatusCode: 503, Message: "overloaded"})
		assert.Equal(t, newsquote.EUNAVAILABLE, newsquote.ErrorCode(err))
	})

	t.Run("other API errors map to internal", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(&openai.Error{StatusCode: 400, Message: "bad request"})
		assert.Equal(t, newsquote.EINTERNAL, newsquote.ErrorCode(err))
	})

	t.Run("unknown errors map to internal", func(t *testing.T) {
		t.Parallel()
		err := classifyErr(errors.New("connection reset"))
		assert.Equal(t, newsquote.EINTERNAL, newsquote.ErrorCode(err))
	})
}

func TestNewCompleter(t *testing.T) {
	t.Parallel()

	c := NewCompleter("key", "", 0.1)
	assert.Equal(t, DefaultModel, c.Model())

	c = NewCompleter("key", "gpt-4o", 0.1)
	assert.Equal(t, "gpt-4o", c.Model())
}
