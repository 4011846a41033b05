// Package diffbot provides the primary newsquote.Extractor backed by the
// Diffbot Article API. Diffbot renders pages server-side, so JavaScript-heavy
// news sites work without a local browser.
package diffbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/newsquote"
)

// DefaultBaseURL is the Diffbot Article API endpoint.
const DefaultBaseURL = "https://api.diffbot.com/v3/article"

// DefaultTimeout is the default timeout for API requests. Diffbot fetches
// and renders the target page on our behalf, so this is generous.
const DefaultTimeout = 60 * time.Second

// requestedFields are the article fields asked of the API. The html field
// lets paginators inspect the page markup for next-page links.
const requestedFields = "title,text,html,author,date,siteName"

// Ensure Extractor implements newsquote.Extractor at compile time.
var _ newsquote.Extractor = (*Extractor)(nil)

// Extractor extracts article content through the Diffbot Article API.
type Extractor struct {
	token   string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(e *Extractor) {
		e.baseURL = u
	}
}

// WithTimeout sets the timeout for API requests.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// NewExtractor creates a Diffbot-backed Extractor using the given API token.
func NewExtractor(token string, opts ...Option) *Extractor {
	e := &Extractor{
		token:   token,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.client = &http.Client{
		Timeout: e.timeout,
	}

	return e
}

// Name identifies the extractor in logs and extraction records.
func (e *Extractor) Name() string { return "diffbot" }

// apiResponse is the subset of the Article API response we consume.
// Diffbot reports most failures in the body with a 200 status.
type apiResponse struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"errorCode"`
	Objects   []struct {
		Title string `json:"title"`
		Text  string `json:"text"`
		HTML  string `json:"html"`
	} `json:"objects"`
}

// Extract fetches the article at pageURL through the API.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*newsquote.PageContent, error) {
	q := url.Values{}
	q.Set("token", e.token)
	q.Set("url", pageURL)
	q.Set("fields", requestedFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, newsquote.Errorf(newsquote.EINVALID, "diffbot request for %q: %v", pageURL, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, newsquote.Errorf(newsquote.ETIMEOUT, "diffbot timeout for %s", pageURL)
		}
		return nil, newsquote.Errorf(newsquote.EUNAVAILABLE, "diffbot request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newsquote.Errorf(newsquote.EUNAVAILABLE, "diffbot response: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, newsquote.Errorf(newsquote.ERATELIMIT, "diffbot rate limited")
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, newsquote.Errorf(newsquote.EUNAUTHORIZED, "diffbot token rejected")
	case resp.StatusCode >= 500:
		return nil, newsquote.Errorf(newsquote.EUNAVAILABLE, "diffbot HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, newsquote.Errorf(newsquote.EINVALID, "diffbot HTTP %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, newsquote.Errorf(newsquote.EUNAVAILABLE, "diffbot response decode: %v", err)
	}

	if parsed.Error != "" {
		return nil, bodyError(parsed.Error, pageURL)
	}
	if len(parsed.Objects) == 0 {
		return nil, newsquote.Errorf(newsquote.EINVALID, "diffbot returned no article for %s", pageURL)
	}

	obj := parsed.Objects[0]
	if strings.TrimSpace(obj.Text) == "" {
		return nil, newsquote.Errorf(newsquote.EINVALID, "diffbot returned empty text for %s", pageURL)
	}

	return &newsquote.PageContent{
		URL:    pageURL,
		Title:  obj.Title,
		Text:   obj.Text,
		HTML:   obj.HTML,
		Method: e.Name(),
	}, nil
}

// bodyError maps Diffbot's in-body error strings to coded errors. Target-site
// 403s come back this way and are worth retrying; download failures are not.
func bodyError(msg, pageURL string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rate limit"), strings.Contains(lower, "too many requests"):
		return newsquote.Errorf(newsquote.ERATELIMIT, "diffbot: %s", msg)
	case strings.Contains(lower, "403"), strings.Contains(lower, "forbidden"):
		return newsquote.Errorf(newsquote.EUNAVAILABLE, "diffbot blocked by %s: %s", host(pageURL), msg)
	case strings.Contains(lower, "timed out"), strings.Contains(lower, "timeout"):
		return newsquote.Errorf(newsquote.ETIMEOUT, "diffbot: %s", msg)
	default:
		return newsquote.Errorf(newsquote.EINVALID, "diffbot: %s", msg)
	}
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}

// Close releases resources. No-op for the API client.
func (e *Extractor) Close() error { return nil }

// String implements fmt.Stringer for diagnostics without leaking the token.
func (e *Extractor) String() string {
	return fmt.Sprintf("diffbot.Extractor(%s)", e.baseURL)
}
