package newsquote

// Paginator derives the next page URL of a multi-page article.
type Paginator interface {
	// NextPage returns the URL of the page following pageURL, or false
	// when the article has no further pages. page is the 1-based index of
	// the page just fetched; html is its markup when available (empty for
	// extractors that only return text).
	NextPage(pageURL string, page int, html string) (string, bool)

	// Name returns the paginator's identifier (e.g., "tribunnews", "generic").
	Name() string
}

// PaginatorRegistry selects a site-specific paginator by URL, falling back
// to a generic markup-based paginator for unknown sites.
type PaginatorRegistry interface {
	// Register adds a paginator for a host suffix (e.g. "tribunnews.com").
	Register(hostSuffix string, p Paginator)

	// ForURL returns the paginator for the URL's host, or the fallback.
	ForURL(rawURL string) Paginator
}
