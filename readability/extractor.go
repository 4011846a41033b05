// Package readability provides the last-resort newsquote.Extractor backed
// by go-readability. It tends to keep more boilerplate than trafilatura
// but succeeds on markup trafilatura rejects.
package readability

import (
	"context"
	"strings"

	"github.com/fwojciec/newsquote"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newsquote.Extractor at compile time.
var _ newsquote.Extractor = (*Extractor)(nil)

// Extractor fetches a page and extracts its main content with go-readability.
type Extractor struct {
	fetcher   newsquote.Fetcher
	converter newsquote.Converter
}

// NewExtractor creates a new Extractor with the given fetcher and converter.
func NewExtractor(fetcher newsquote.Fetcher, converter newsquote.Converter) *Extractor {
	return &Extractor{
		fetcher:   fetcher,
		converter: converter,
	}
}

// Name identifies the extractor in logs and extraction records.
func (e *Extractor) Name() string { return "readability" }

// Extract downloads the page and returns its article text.
func (e *Extractor) Extract(ctx context.Context, url string) (*newsquote.PageContent, error) {
	rawHTML, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsquote.Errorf(newsquote.EINVALID, "empty HTML from %s", url)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, newsquote.Errorf(newsquote.EINVALID, "readability extract %s: %v", url, err)
	}

	text := article.TextContent
	if article.Content != "" {
		if md, err := e.converter.Convert(article.Content); err == nil {
			text = md
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, newsquote.Errorf(newsquote.EINVALID, "no content extracted from %s", url)
	}

	return &newsquote.PageContent{
		URL:    url,
		Title:  article.Title,
		Text:   text,
		HTML:   rawHTML,
		Method: e.Name(),
	}, nil
}
