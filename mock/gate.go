package mock

import (
	"context"

	"github.com/fwojciec/newsquote"
)

var _ newsquote.Gate = (*Gate)(nil)

// Gate is a mock implementation of newsquote.Gate.
type Gate struct {
	WaitFn func(ctx context.Context) error
}

func (g *Gate) Wait(ctx context.Context) error {
	if g.WaitFn == nil {
		return nil
	}
	return g.WaitFn(ctx)
}
