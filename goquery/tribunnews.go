package goquery

import (
	"net/url"
	"strconv"

	"github.com/fwojciec/newsquote"
)

var _ newsquote.Paginator = (*TribunPaginator)(nil)

// TribunPaginator derives next-page URLs for the Tribun News network.
// Tribun splits articles across pages addressed by a query parameter
// (?page=N&s=paging_new) that is absent from the page markup returned by
// extraction APIs, so the next URL is synthesized rather than discovered.
// The pagination walker's duplicate-content guard terminates the walk when
// the site starts echoing the last real page.
type TribunPaginator struct{}

// NewTribunPaginator creates a new TribunPaginator.
func NewTribunPaginator() *TribunPaginator {
	return &TribunPaginator{}
}

// Name returns the paginator's identifier.
func (p *TribunPaginator) Name() string { return "tribunnews" }

// NextPage synthesizes the URL of the page after the given 1-based page
// index. The markup is ignored.
func (p *TribunPaginator) NextPage(pageURL string, page int, html string) (string, bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page+1))
	q.Set("s", "paging_new")
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String(), true
}
