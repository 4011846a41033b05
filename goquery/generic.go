package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsquote"
)

var _ newsquote.Paginator = (*GenericPaginator)(nil)

// GenericPaginator discovers next-page links from page markup using
// universal patterns: rel="next" annotations, common pagination class
// names, and next-page anchor text in English and Indonesian. Unlike
// site-specific paginators it never synthesizes URLs, so single-page
// articles terminate after one page.
type GenericPaginator struct{}

// NewGenericPaginator creates a new GenericPaginator.
func NewGenericPaginator() *GenericPaginator {
	return &GenericPaginator{}
}

// Name returns the paginator's identifier.
func (p *GenericPaginator) Name() string { return "generic" }

// nextTexts are anchor texts that mark a next-page link.
var nextTexts = map[string]bool{
	"next":                true,
	"next page":           true,
	"selanjutnya":         true,
	"berikutnya":          true,
	"halaman selanjutnya": true,
	"halaman berikutnya":  true,
	"»":                   true,
	">":                   true,
}

// NextPage inspects the page markup for a next-page link. Links pointing
// off-host or back at the current page are ignored.
func (p *GenericPaginator) NextPage(pageURL string, page int, html string) (string, bool) {
	if strings.TrimSpace(html) == "" {
		return "", false
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	// Explicit rel="next" annotations first, then common pagination markup.
	selectors := []string{
		`link[rel="next"]`,
		`a[rel="next"]`,
		".pagination a.next",
		".paging a.next",
		"a.next-page",
	}

	for _, selector := range selectors {
		if next, ok := p.resolve(base, pageURL, doc.Find(selector).First()); ok {
			return next, true
		}
	}

	// Fall back to anchor text inside pagination containers.
	var next string
	doc.Find(".pagination a[href], .paging a[href], .paging-container a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !nextTexts[strings.ToLower(strings.TrimSpace(sel.Text()))] {
			return true
		}
		if resolved, ok := p.resolve(base, pageURL, sel); ok {
			next = resolved
			return false
		}
		return true
	})
	if next != "" {
		return next, true
	}

	return "", false
}

// resolve turns a selection's href into an absolute same-host URL that
// differs from the current page.
func (p *GenericPaginator) resolve(base *url.URL, pageURL string, sel *goquery.Selection) (string, bool) {
	href, exists := sel.Attr("href")
	if !exists || href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if !strings.EqualFold(resolved.Hostname(), base.Hostname()) {
		return "", false
	}
	resolved.Fragment = ""

	s := resolved.String()
	if s == pageURL {
		return "", false
	}
	return s, true
}
