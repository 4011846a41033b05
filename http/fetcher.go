// Package http provides an HTTP-based implementation of newsquote.Fetcher
// for retrieving raw article HTML from news sites.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fwojciec/newsquote"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the client to news sites. Some block
// requests without a browser-like user agent outright.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements newsquote.Fetcher at compile time.
var _ newsquote.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Failures carry error codes so retry policies can distinguish transient
// conditions (403, 429, 5xx, timeouts) from permanent ones (other 4xx).
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", newsquote.Errorf(newsquote.EINVALID, "invalid url %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return "", newsquote.Errorf(newsquote.ETIMEOUT, "timeout fetching %s", url)
		}
		return "", newsquote.Errorf(newsquote.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newsquote.Errorf(newsquote.EUNAVAILABLE, "read body of %s: %v", url, err)
	}

	return string(body), nil
}

// statusError maps a non-200 status to a coded error. 403 is transient:
// news sites return it for rate limiting as often as for real denials.
func statusError(status int, url string) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests:
		return newsquote.Errorf(newsquote.ERATELIMIT, "HTTP 429 for %s", url)
	case status == http.StatusForbidden:
		return newsquote.Errorf(newsquote.EUNAVAILABLE, "HTTP 403 for %s", url)
	case status == http.StatusNotFound:
		return newsquote.Errorf(newsquote.ENOTFOUND, "HTTP 404 for %s", url)
	case status >= 500:
		return newsquote.Errorf(newsquote.EUNAVAILABLE, "HTTP %d for %s", status, url)
	default:
		return newsquote.Errorf(newsquote.EINVALID, "HTTP %d for %s", status, url)
	}
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
