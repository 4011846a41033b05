package newsquote

import (
	"strings"
	"time"
)

// PageBreak separates the text of consecutive article pages inside an
// ExtractionRecord's content.
const PageBreak = "\n\n---PAGE BREAK---\n\n"

// ArticleInput identifies one article to be fetched. Inputs are immutable
// and come from the batch input file.
type ArticleInput struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	SourceURL string `json:"sourceUrl"`
}

// Validate returns an error if the input contains invalid fields.
func (a *ArticleInput) Validate() error {
	if a.ID == "" {
		return Errorf(EINVALID, "article ID required")
	}
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if !strings.HasPrefix(a.SourceURL, "http") {
		return Errorf(EINVALID, "article source URL must be absolute: %q", a.SourceURL)
	}
	if a.Date != "" {
		if _, err := time.Parse("2006-01-02", a.Date); err != nil {
			return Errorf(EINVALID, "article date must be YYYY-MM-DD: %q", a.Date)
		}
	}
	return nil
}

// ExtractionRecord is one article's retrieved raw text plus provenance
// metadata. Exactly one record is produced per ArticleInput; Content is
// empty when every extractor failed, never omitted.
type ExtractionRecord struct {
	ID            string    `json:"id"`
	DateArticle   string    `json:"dateArticle"`
	IngestionTime time.Time `json:"ingestionTime"`
	SourceURL     string    `json:"sourceUrl"`

	// Content is the ordered concatenation of all successfully retrieved
	// pages, joined with PageBreak.
	Content string `json:"content"`

	// Pages is the number of pages that contributed to Content.
	Pages int `json:"pages"`

	// Method names the extractor that produced the first page
	// (e.g. "diffbot", "trafilatura"). Empty when Content is empty.
	Method string `json:"method"`
}

// Empty reports whether the record carries no usable article text.
func (r *ExtractionRecord) Empty() bool {
	return strings.TrimSpace(r.Content) == ""
}
