package mock

import "github.com/fwojciec/newsquote"

var _ newsquote.Paginator = (*Paginator)(nil)

// Paginator is a mock implementation of newsquote.Paginator.
type Paginator struct {
	NextPageFn func(pageURL string, page int, html string) (string, bool)
	NameFn     func() string
}

func (p *Paginator) NextPage(pageURL string, page int, html string) (string, bool) {
	return p.NextPageFn(pageURL, page, html)
}

func (p *Paginator) Name() string {
	if p.NameFn == nil {
		return "mock"
	}
	return p.NameFn()
}

var _ newsquote.PaginatorRegistry = (*PaginatorRegistry)(nil)

// PaginatorRegistry is a mock implementation of newsquote.PaginatorRegistry.
type PaginatorRegistry struct {
	RegisterFn func(hostSuffix string, p newsquote.Paginator)
	ForURLFn   func(rawURL string) newsquote.Paginator
}

func (r *PaginatorRegistry) Register(hostSuffix string, p newsquote.Paginator) {
	r.RegisterFn(hostSuffix, p)
}

func (r *PaginatorRegistry) ForURL(rawURL string) newsquote.Paginator {
	return r.ForURLFn(rawURL)
}
