package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreateRun(t *testing.T, s *sqlite.RunService, kind string) *newsquote.Run {
	t.Helper()
	run := &newsquote.Run{Kind: kind, Input: "input.csv"}
	require.NoError(t, s.CreateRun(context.Background(), run))
	return run
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and start time", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(MustOpenDB(t))
		run := mustCreateRun(t, s, newsquote.RunKindExtract)

		assert.NotEmpty(t, run.ID)
		assert.False(t, run.StartedAt.IsZero())

		got, err := s.FindRunByID(context.Background(), run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, got.ID)
		assert.Equal(t, newsquote.RunKindExtract, got.Kind)
		assert.Equal(t, "input.csv", got.Input)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(MustOpenDB(t))
		err := s.CreateRun(context.Background(), &newsquote.Run{Kind: "bogus"})
		require.Error(t, err)
		assert.Equal(t, newsquote.EINVALID, newsquote.ErrorCode(err))
	})

	t.Run("missing run is not found", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(MustOpenDB(t))
		_, err := s.FindRunByID(context.Background(), "no-such-run")
		require.Error(t, err)
		assert.Equal(t, newsquote.ENOTFOUND, newsquote.ErrorCode(err))
	})
}

func TestRunService_Extractions(t *testing.T) {
	t.Parallel()

	t.Run("saves and retrieves in batch order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(MustOpenDB(t))
		run := mustCreateRun(t, s, newsquote.RunKindExtract)

		recs := []*newsquote.ExtractionRecord{
			{ID: "1", DateArticle: "2024-10-19", IngestionTime: time.Now().UTC(), SourceURL: "https://example.com/a", Content: "Isi satu.", Pages: 1, Method: "diffbot"},
			{ID: "2", DateArticle: "2024-10-20", IngestionTime: time.Now().UTC(), SourceURL: "https://example.com/b", Content: "", Pages: 0},
		}
		require.NoError(t, s.SaveExtractions(context.Background(), run.ID, recs))

		got, err := s.FindExtractionsByRun(context.Background(), run.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "Isi satu.", got[0].Content)
		assert.Equal(t, "diffbot", got[0].Method)
		assert.Equal(t, "2", got[1].ID)
		assert.True(t, got[1].Empty())
	})

	t.Run("checkpointing a longer prefix is idempotent", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(MustOpenDB(t))
		run := mustCreateRun(t, s, newsquote.RunKindExtract)

		first := []*newsquote.ExtractionRecord{
			{ID: "1", IngestionTime: time.Now().UTC(), SourceURL: "https://example.com/a", Content: "Isi satu."},
		}
		require.NoError(t, s.SaveExtractions(context.Background(), run.ID, first))

		// Second checkpoint repeats record 1 (updated) and adds record 2.
		second := []*newsquote.ExtractionRecord{
			{ID: "1", IngestionTime: time.Now().UTC(), SourceURL: "https://example.com/a", Content: "Isi satu, diperbarui."},
			{ID: "2", IngestionTime: time.Now().UTC(), SourceURL: "https://example.com/b", Content: "Isi dua."},
		}
		require.NoError(t, s.SaveExtractions(context.Background(), run.ID, second))

		got, err := s.FindExtractionsByRun(context.Background(), run.ID)
		require.NoError(t, err)
		require.Len(t, got, 2, "no duplicates from overlapping checkpoints")
		assert.Equal(t, "Isi satu, diperbarui.", got[0].Content)
	})
}

func TestRunService_Rows(t *testing.T) {
	t.Parallel()

	t.Run("saves and retrieves in output order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(MustOpenDB(t))
		run := mustCreateRun(t, s, newsquote.RunKindParse)

		rows := []newsquote.ParsedRow{
			{ID: "1", Date: "2024-10-19", SourceURL: "https://example.com/a", Quote: "Kami siaga.", Speaker: "Kepala BPBD", Province: "Jawa Tengah", City: "Semarang"},
			{ID: "1", Date: "2024-10-19", SourceURL: "https://example.com/a", Quote: "Warga diminta waspada.", Speaker: "Wali Kota"},
		}
		require.NoError(t, s.SaveRows(context.Background(), run.ID, rows))

		got, err := s.FindRowsByRun(context.Background(), run.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, rows[0], got[0])
		assert.Equal(t, rows[1], got[1])
	})

	t.Run("overlapping checkpoints do not duplicate rows", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(MustOpenDB(t))
		run := mustCreateRun(t, s, newsquote.RunKindParse)

		prefix := []newsquote.ParsedRow{
			{ID: "1", SourceURL: "https://example.com/a", Quote: "a", Speaker: "X"},
		}
		require.NoError(t, s.SaveRows(context.Background(), run.ID, prefix))

		full := []newsquote.ParsedRow{
			{ID: "1", SourceURL: "https://example.com/a", Quote: "a", Speaker: "X"},
			{ID: "2", SourceURL: "https://example.com/b", Quote: "b", Speaker: "Y"},
		}
		require.NoError(t, s.SaveRows(context.Background(), run.ID, full))

		got, err := s.FindRowsByRun(context.Background(), run.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
