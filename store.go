package newsquote

import (
	"context"
	"time"
)

// Run kinds persisted by a RunService.
const (
	RunKindExtract = "extract"
	RunKindParse   = "parse"
)

// Run represents one batch execution. Records and rows are checkpointed
// against a run so a partially completed batch can be inspected.
type Run struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Input     string    `json:"input"` // input file name, for provenance
	StartedAt time.Time `json:"startedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	switch r.Kind {
	case RunKindExtract, RunKindParse:
	default:
		return Errorf(EINVALID, "unknown run kind %q", r.Kind)
	}
	return nil
}

// RunService persists batch runs with their extraction records and parsed
// rows. Saves are idempotent per (run, position) so checkpointing the same
// prefix twice does not duplicate data.
type RunService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// SaveExtractions upserts extraction records for a run, keyed by
	// their position in the batch.
	SaveExtractions(ctx context.Context, runID string, recs []*ExtractionRecord) error

	// FindExtractionsByRun retrieves a run's records in batch order.
	FindExtractionsByRun(ctx context.Context, runID string) ([]*ExtractionRecord, error)

	// SaveRows upserts parsed rows for a run, keyed by position.
	SaveRows(ctx context.Context, runID string, rows []ParsedRow) error

	// FindRowsByRun retrieves a run's parsed rows in output order.
	FindRowsByRun(ctx context.Context, runID string) ([]ParsedRow, error)
}
