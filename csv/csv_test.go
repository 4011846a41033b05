package csv_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsquote"
	nqcsv "github.com/fwojciec/newsquote/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputs(t *testing.T) {
	t.Parallel()

	t.Run("reads valid rows", func(t *testing.T) {
		t.Parallel()

		in := "ID,date,source\n1,2024-10-19,https://example.com/a\n2,2024-10-20,https://example.com/b\n"
		inputs, skipped, err := nqcsv.ReadInputs(strings.NewReader(in))

		require.NoError(t, err)
		assert.Equal(t, 0, skipped)
		require.Len(t, inputs, 2)
		assert.Equal(t, newsquote.ArticleInput{ID: "1", Date: "2024-10-19", SourceURL: "https://example.com/a"}, inputs[0])
	})

	t.Run("tolerates a BOM and header case", func(t *testing.T) {
		t.Parallel()

		in := "\uFEFFid,Date,Source\n1,2024-10-19,https://example.com/a\n"
		inputs, _, err := nqcsv.ReadInputs(strings.NewReader(in))

		require.NoError(t, err)
		assert.Len(t, inputs, 1)
	})

	t.Run("skips rows with invalid URLs", func(t *testing.T) {
		t.Parallel()

		in := "ID,date,source\n1,2024-10-19,https://example.com/a\n2,2024-10-19,not-a-url\n3,2024-10-19,\n"
		inputs, skipped, err := nqcsv.ReadInputs(strings.NewReader(in))

		require.NoError(t, err)
		assert.Len(t, inputs, 1)
		assert.Equal(t, 2, skipped)
	})

	t.Run("rejects wrong header", func(t *testing.T) {
		t.Parallel()

		in := "url,when\nhttps://example.com/a,2024-10-19\n"
		_, _, err := nqcsv.ReadInputs(strings.NewReader(in))

		require.Error(t, err)
		assert.Equal(t, newsquote.EINVALID, newsquote.ErrorCode(err))
	})

	t.Run("rejects empty file", func(t *testing.T) {
		t.Parallel()

		_, _, err := nqcsv.ReadInputs(strings.NewReader(""))
		require.Error(t, err)
	})
}

func TestExtractionsRoundTrip(t *testing.T) {
	t.Parallel()

	recs := []*newsquote.ExtractionRecord{
		{
			ID:            "1",
			DateArticle:   "2024-10-19",
			IngestionTime: time.Date(2024, 10, 19, 12, 30, 0, 0, time.UTC),
			SourceURL:     "https://example.com/a",
			Content:       "Halaman satu." + newsquote.PageBreak + "Halaman dua.",
			Pages:         2,
			Method:        "diffbot",
		},
		{
			ID:            "2",
			DateArticle:   "2024-10-20",
			IngestionTime: time.Date(2024, 10, 19, 12, 31, 0, 0, time.UTC),
			SourceURL:     "https://example.com/b",
			Content:       "", // failed extraction still gets a record
		},
	}

	var buf bytes.Buffer
	require.NoError(t, nqcsv.WriteExtractions(&buf, recs))

	got, err := nqcsv.ReadExtractions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, recs[0].ID, got[0].ID)
	assert.Equal(t, recs[0].Content, got[0].Content, "page breaks and newlines survive the round trip")
	assert.Equal(t, recs[0].Pages, got[0].Pages)
	assert.Equal(t, recs[0].Method, got[0].Method)
	assert.True(t, recs[0].IngestionTime.Equal(got[0].IngestionTime))

	assert.True(t, got[1].Empty())
}

func TestWriteRows(t *testing.T) {
	t.Parallel()

	rows := []newsquote.ParsedRow{
		{
			ID:        "1",
			Date:      "2024-10-19",
			SourceURL: "https://example.com/a",
			Quote:     `Kami terus melakukan "penyedotan" air.`,
			Speaker:   "Kepala BPBD",
			Province:  "Jawa Tengah",
			City:      "Semarang",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, nqcsv.WriteRows(&buf, rows))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,date,source,quote,speaker,province,city", lines[0])
	assert.Contains(t, out, "Kepala BPBD")
	assert.Contains(t, out, "Jawa Tengah")
	assert.Contains(t, out, `""penyedotan""`, "embedded quotes are CSV-escaped")
}
