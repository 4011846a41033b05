package mock

import (
	"context"

	"github.com/fwojciec/newsquote"
)

var _ newsquote.RunService = (*RunService)(nil)

// RunService is a mock implementation of newsquote.RunService.
type RunService struct {
	CreateRunFn            func(ctx context.Context, run *newsquote.Run) error
	FindRunByIDFn          func(ctx context.Context, id string) (*newsquote.Run, error)
	SaveExtractionsFn      func(ctx context.Context, runID string, recs []*newsquote.ExtractionRecord) error
	FindExtractionsByRunFn func(ctx context.Context, runID string) ([]*newsquote.ExtractionRecord, error)
	SaveRowsFn             func(ctx context.Context, runID string, rows []newsquote.ParsedRow) error
	FindRowsByRunFn        func(ctx context.Context, runID string) ([]newsquote.ParsedRow, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *newsquote.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*newsquote.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) SaveExtractions(ctx context.Context, runID string, recs []*newsquote.ExtractionRecord) error {
	return s.SaveExtractionsFn(ctx, runID, recs)
}

func (s *RunService) FindExtractionsByRun(ctx context.Context, runID string) ([]*newsquote.ExtractionRecord, error) {
	return s.FindExtractionsByRunFn(ctx, runID)
}

func (s *RunService) SaveRows(ctx context.Context, runID string, rows []newsquote.ParsedRow) error {
	return s.SaveRowsFn(ctx, runID, rows)
}

func (s *RunService) FindRowsByRun(ctx context.Context, runID string) ([]newsquote.ParsedRow, error) {
	return s.FindRowsByRunFn(ctx, runID)
}
