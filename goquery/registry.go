// Package goquery provides paginators that derive next-page links for
// multi-page news articles, plus a registry that picks the right paginator
// for a site.
package goquery

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newsquote"
)

var _ newsquote.PaginatorRegistry = (*Registry)(nil)

// Registry manages site-specific paginators keyed by host suffix. It
// returns the fallback paginator when no specific paginator matches the
// URL's host. Registration happens at startup; lookups are read-only.
type Registry struct {
	fallback newsquote.Paginator
	byHost   map[string]newsquote.Paginator
}

// NewRegistry creates a new Registry with the given fallback paginator.
// The fallback is used for hosts without a registered paginator.
func NewRegistry(fallback newsquote.Paginator) *Registry {
	return &Registry{
		fallback: fallback,
		byHost:   make(map[string]newsquote.Paginator),
	}
}

// Register adds a paginator for a host suffix (e.g. "tribunnews.com").
// The suffix matches the host itself and any of its subdomains.
// If a paginator is already registered for the suffix, it is replaced.
func (r *Registry) Register(hostSuffix string, p newsquote.Paginator) {
	r.byHost[strings.ToLower(hostSuffix)] = p
}

// ForURL returns the paginator registered for the URL's host, or the
// fallback when the host is unknown or the URL cannot be parsed.
func (r *Registry) ForURL(rawURL string) newsquote.Paginator {
	u, err := url.Parse(rawURL)
	if err != nil {
		return r.fallback
	}
	host := strings.ToLower(u.Hostname())
	for suffix, p := range r.byHost {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return p
		}
	}
	return r.fallback
}
