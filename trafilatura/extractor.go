// Package trafilatura provides a local fallback newsquote.Extractor that
// downloads the page itself and removes boilerplate with go-trafilatura.
package trafilatura

import (
	"bytes"
	"context"
	"strings"

	"github.com/fwojciec/newsquote"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements newsquote.Extractor at compile time.
var _ newsquote.Extractor = (*Extractor)(nil)

// Extractor fetches a page and extracts its main content with
// go-trafilatura. The extracted content HTML is converted to markdown so
// the parsing stage sees readable plain text.
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
func (e *Extractor) Name() string { return "trafilatura" }

// Extract downloads the page and returns its article text. Fetch errors
// propagate with their codes intact; extraction failures are EINVALID so
// the caller falls through to the next extractor.
func (e *Extractor) Extract(ctx context.Context, url string) (*newsquote.PageContent, error) {
	rawHTML, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsquote.Errorf(newsquote.EINVALID, "empty HTML from %s", url)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, newsquote.Errorf(newsquote.EINVALID, "trafilatura extract %s: %v", url, err)
	}

	text := result.ContentText
	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err == nil {
			if md, err := e.converter.Convert(contentHTML); err == nil {
				text = md
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, newsquote.Errorf(newsquote.EINVALID, "no content extracted from %s", url)
	}

	return &newsquote.PageContent{
		URL:    url,
		Title:  result.Metadata.Title,
		Text:   text,
		HTML:   rawHTML,
		Method: e.Name(),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
