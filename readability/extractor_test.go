package readability_test

import (
	"context"
	"testing"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/htmltomarkdown"
	"github.com/fwojciec/newsquote/mock"
	"github.com/fwojciec/newsquote/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = `<!DOCTYPE html>
<html>
<head><title>Gempa Guncang Cianjur</title></head>
<body>
<article>
<h1>Gempa Guncang Cianjur</h1>
<p>Gempa bumi berkekuatan magnitudo 5,6 mengguncang wilayah Cianjur, Jawa Barat, pada Senin siang dan terasa hingga Jakarta.</p>
<p>"Kami masih mendata kerusakan di lapangan," ujar juru bicara BNPB dalam keterangan tertulisnya.</p>
<p>Sejumlah warga memilih bertahan di luar rumah karena khawatir terjadi gempa susulan dalam beberapa jam ke depan.</p>
</article>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article text from fetched HTML", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return sampleArticle, nil
			},
		}
		e := readability.NewExtractor(fetcher, htmltomarkdown.NewConverter())

		got, err := e.Extract(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		assert.Contains(t, got.Text, "magnitudo 5,6")
		assert.Contains(t, got.Text, "mendata kerusakan")
		assert.Equal(t, "readability", got.Method)
	})

	t.Run("fetch error propagates with its code", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", newsquote.Errorf(newsquote.ETIMEOUT, "timeout")
			},
		}
		e := readability.NewExtractor(fetcher, htmltomarkdown.NewConverter())

		_, err := e.Extract(context.Background(), "https://example.com/a")
		require.Error(t, err)
		assert.Equal(t, newsquote.ETIMEOUT, newsquote.ErrorCode(err))
	})

	t.Run("empty HTML is permanent", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", nil
			},
		}
		e := readability.NewExtractor(fetcher, htmltomarkdown.NewConverter())

		_, err := e.Extract(context.Background(), "https://example.com/a")
		require.Error(t, err)
		assert.Equal(t, newsquote.EINVALID, newsquote.ErrorCode(err))
	})
}

// Compile-time verification that Extractor implements newsquote.Extractor
var _ newsquote.Extractor = (*readability.Extractor)(nil)
