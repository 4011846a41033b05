package mock

import (
	"context"

	"github.com/fwojciec/newsquote"
)

var _ newsquote.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsquote.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, url string) (*newsquote.PageContent, error)
	NameFn    func() string
}

func (e *Extractor) Extract(ctx context.Context, url string) (*newsquote.PageContent, error) {
	return e.ExtractFn(ctx, url)
}

func (e *Extractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}
