// Package app contains the application layer - service implementations.
package app

import (
	"context"
	"fmt"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/ports/primary"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// StagingServiceImpl implements the StagingService interface.
type StagingServiceImpl struct {
	stagingRepo secondary.StagingRepository
}

// NewStagingService creates a new StagingService with injected dependencies.
func NewStagingService(stagingRepo secondary.StagingRepository) *StagingServiceImpl {
	return &StagingServiceImpl{
		stagingRepo: stagingRepo,
	}
}

// ListStaged retrieves all staged postings, oldest first.
func (s *StagingServiceImpl) ListStaged(ctx context.Context) ([]*primary.StagedPosting, error) {
	records, err := s.stagingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staged postings: %w", err)
	}

	staged := make([]*primary.StagedPosting, len(records))
	for i, r := range records {
		staged[i] = recordToStaged(r)
	}
	return staged, nil
}

// GetStaged retrieves a staged posting by ID.
func (s *StagingServiceImpl) GetStaged(ctx context.Context, id int64) (*primary.StagedPosting, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid staged posting id %d", failure.ErrInvalidArgument, id)
	}

	record, err := s.stagingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToStaged(record), nil
}

// ClearStaging removes every staged posting.
func (s *StagingServiceImpl) ClearStaging(ctx context.Context) (int, error) {
	removed, err := s.stagingRepo.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear staging: %w", err)
	}
	return removed, nil
}

func recordToStaged(r *secondary.StagedPostingRecord) *primary.StagedPosting {
	return &primary.StagedPosting{
		ID:         r.ID,
		Company:    r.Company,
		Position:   r.Position,
		Location:   r.Location,
		Link:       r.Link,
		DatePosted: r.DatePosted,
		FetchedAt:  r.FetchedAt,
	}
}

// Ensure StagingServiceImpl implements the interface.
var _ primary.StagingService = (*StagingServiceImpl)(nil)
