package goquery_test

import (
	"testing"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericPaginator_NextPage(t *testing.T) {
	t.Parallel()

	const pageURL = "https://news.example.com/read/2024/10/19/judul"

	t.Run("finds link rel=next", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()
		html := `<html><head><link rel="next" href="/read/2024/10/19/judul?page=2"></head><body></body></html>`

		next, ok := p.NextPage(pageURL, 1, html)
		require.True(t, ok)
		assert.Equal(t, "https://news.example.com/read/2024/10/19/judul?page=2", next)
	})

	t.Run("finds anchor rel=next", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()
		html := `<html><body><a rel="next" href="?page=2">2</a></body></html>`

		next, ok := p.NextPage(pageURL, 1, html)
		require.True(t, ok)
		assert.Equal(t, "https://news.example.com/read/2024/10/19/judul?page=2", next)
	})

	t.Run("finds Indonesian next-page anchor text", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()
		html := `<html><body><div class="pagination">
			<a href="?page=1">1</a>
			<a href="?page=2">Selanjutnya</a>
		</div></body></html>`

		next, ok := p.NextPage(pageURL, 1, html)
		require.True(t, ok)
		assert.Contains(t, next, "page=2")
	})

	t.Run("no pagination markup means no next page", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()
		html := `<html><body><article><p>Isi berita.</p></article></body></html>`

		_, ok := p.NextPage(pageURL, 1, html)
		assert.False(t, ok)
	})

	t.Run("empty markup means no next page", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()

		_, ok := p.NextPage(pageURL, 1, "")
		assert.False(t, ok)
	})

	t.Run("ignores off-host next links", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()
		html := `<html><body><a rel="next" href="https://ads.example.org/landing">Next</a></body></html>`

		_, ok := p.NextPage(pageURL, 1, html)
		assert.False(t, ok)
	})

	t.Run("ignores self-referencing next links", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()
		html := `<html><body><a rel="next" href="` + pageURL + `">Next</a></body></html>`

		_, ok := p.NextPage(pageURL, 1, html)
		assert.False(t, ok)
	})

	t.Run("ignores fragment-only hrefs", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewGenericPaginator()
		html := `<html><body><a rel="next" href="#top">Next</a></body></html>`

		_, ok := p.NextPage(pageURL, 1, html)
		assert.False(t, ok)
	})
}

// Compile-time verification that GenericPaginator implements newsquote.Paginator
var _ newsquote.Paginator = (*goquery.GenericPaginator)(nil)
