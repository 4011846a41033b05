package goquery_test

import (
	"testing"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTribunPaginator_NextPage(t *testing.T) {
	t.Parallel()

	t.Run("synthesizes page 2 from article URL", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewTribunPaginator()

		next, ok := p.NextPage("https://jateng.tribunnews.com/2024/10/19/judul-berita", 1, "")
		require.True(t, ok)
		assert.Equal(t, "https://jateng.tribunnews.com/2024/10/19/judul-berita?page=2&s=paging_new", next)
	})

	t.Run("advances an already paginated URL", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewTribunPaginator()

		next, ok := p.NextPage("https://jateng.tribunnews.com/2024/10/19/judul-berita?page=2&s=paging_new", 2, "")
		require.True(t, ok)
		assert.Equal(t, "https://jateng.tribunnews.com/2024/10/19/judul-berita?page=3&s=paging_new", next)
	})

	t.Run("ignores markup", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewTribunPaginator()

		next, ok := p.NextPage("https://tribunnews.com/a", 1, "<html></html>")
		require.True(t, ok)
		assert.Contains(t, next, "page=2")
	})
}

// Compile-time verification that TribunPaginator implements newsquote.Paginator
var _ newsquote.Paginator = (*goquery.TribunPaginator)(nil)
