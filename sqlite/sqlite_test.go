package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/newsquote/sqlite"
	"github.com/stretchr/testify/require"
)

// MustOpenDB opens an in-memory database or fails the test.
func MustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		ctx := context.Background()

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count))
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM extractions").Scan(&count))
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM parsed_rows").Scan(&count))
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		require.Error(t, db.Open())
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/test.db")
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}
