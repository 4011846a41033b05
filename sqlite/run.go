package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsquote"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsquote.RunService = (*RunService)(nil)

// RunService implements newsquote.RunService using SQLite. Saves are
// upserts keyed by (run, position), so checkpointing the same prefix
// repeatedly is idempotent.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateRun creates a new run, assigning its ID and start time.
func (s *RunService) CreateRun(ctx context.Context, run *newsquote.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, input, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Kind, run.Input, run.StartedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*newsquote.Run, error) {
	var run newsquote.Run
	var startedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, input, started_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Kind, &run.Input, &startedAt)

	if err == sql.ErrNoRows {
		return nil, newsquote.Errorf(newsquote.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	var parseErr error
	run.StartedAt, parseErr = time.Parse(time.RFC3339, startedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", parseErr)
	}

	return &run, nil
}

// SaveExtractions upserts extraction records for a run, keyed by their
// position in the batch.
func (s *RunService) SaveExtractions(ctx context.Context, runID string, recs []*newsquote.ExtractionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO extractions (run_id, position, article_id, date_article, ingestion_time, source_url, content, content_hash, pages, method)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, position) DO UPDATE SET
			article_id = excluded.article_id,
			date_article = excluded.date_article,
			ingestion_time = excluded.ingestion_time,
			source_url = excluded.source_url,
			content = excluded.content,
			content_hash = excluded.content_hash,
			pages = excluded.pages,
			method = excluded.method
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range recs {
		_, err := stmt.ExecContext(ctx, runID, i, rec.ID, rec.DateArticle,
			rec.IngestionTime.UTC().Format(time.RFC3339), rec.SourceURL,
			rec.Content, hashContent(rec.Content), rec.Pages, rec.Method)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindExtractionsByRun retrieves a run's records in batch order.
func (s *RunService) FindExtractionsByRun(ctx context.Context, runID string) ([]*newsquote.ExtractionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT article_id, date_article, ingestion_time, source_url, content, pages, method
		FROM extractions
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*newsquote.ExtractionRecord
	for rows.Next() {
		var rec newsquote.ExtractionRecord
		var ingestionTime string

		if err := rows.Scan(&rec.ID, &rec.DateArticle, &ingestionTime,
			&rec.SourceURL, &rec.Content, &rec.Pages, &rec.Method); err != nil {
			return nil, err
		}

		var parseErr error
		rec.IngestionTime, parseErr = time.Parse(time.RFC3339, ingestionTime)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse ingestion_time: %w", parseErr)
		}

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

// SaveRows upserts parsed rows for a run, keyed by position.
func (s *RunService) SaveRows(ctx context.Context, runID string, rows []newsquote.ParsedRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO parsed_rows (run_id, position, article_id, date, source_url, quote, speaker, province, city)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, position) DO UPDATE SET
			article_id = excluded.article_id,
			date = excluded.date,
			source_url = excluded.source_url,
			quote = excluded.quote,
			speaker = excluded.speaker,
			province = excluded.province,
			city = excluded.city
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range rows {
		_, err := stmt.ExecContext(ctx, runID, i, row.ID, row.Date,
			row.SourceURL, row.Quote, row.Speaker, row.Province, row.City)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRowsByRun retrieves a run's parsed rows in output order.
func (s *RunService) FindRowsByRun(ctx context.Context, runID string) ([]newsquote.ParsedRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT article_id, date, source_url, quote, speaker, province, city
		FROM parsed_rows
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parsed []newsquote.ParsedRow
	for rows.Next() {
		var row newsquote.ParsedRow
		if err := rows.Scan(&row.ID, &row.Date, &row.SourceURL,
			&row.Quote, &row.Speaker, &row.Province, &row.City); err != nil {
			return nil, err
		}
		parsed = append(parsed, row)
	}

	return parsed, rows.Err()
}
