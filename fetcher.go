package newsquote

import "context"

// Fetcher retrieves raw HTML from URLs. Local fallback extractors use it
// to download pages before boilerplate removal.
type Fetcher interface {
	// Fetch downloads the URL and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Converter transforms extracted content HTML into plain markdown text.
type Converter interface {
	Convert(html string) (string, error)
}
