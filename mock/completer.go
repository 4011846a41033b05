package mock

import (
	"context"

	"github.com/fwojciec/newsquote"
)

var _ newsquote.Completer = (*Completer)(nil)

// Completer is a mock implementation of newsquote.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, maxOutputTokens int32) (string, error)
	ModelFn    func() string
}

func (c *Completer) Complete(ctx context.Context, prompt string, maxOutputTokens int32) (string, error) {
	return c.CompleteFn(ctx, prompt, maxOutputTokens)
}

func (c *Completer) Model() string {
	if c.ModelFn == nil {
		return "mock-model"
	}
	return c.ModelFn()
}
