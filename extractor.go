package newsquote

import "context"

// PageContent holds the extracted text of a single article page. It is
// transient: the pagination walker consumes it immediately and only the
// concatenated text survives in the ExtractionRecord.
type PageContent struct {
	// URL is the page that was fetched.
	URL string

	// Title is the article title, when the extractor reports one.
	Title string

	// Text is the extracted article text.
	Text string

	// HTML is the page markup when the extractor has it available.
	// Paginators inspect it to derive the next page link.
	HTML string

	// Method names the extractor that produced this page.
	Method string
}

// Extractor resolves one page URL to article text. Implementations wrap a
// remote extraction API or a local boilerplate-removal library.
//
// Errors must carry an application error code so callers can classify
// them: EUNAVAILABLE, ETIMEOUT and ERATELIMIT are transient and worth
// retrying; EINVALID and ENOTFOUND are permanent for this extractor and
// the caller should fall through to the next one.
type Extractor interface {
	// Extract fetches the page and returns its article text.
	Extract(ctx context.Context, url string) (*PageContent, error)

	// Name returns the extractor's identifier (e.g., "diffbot").
	Name() string
}
