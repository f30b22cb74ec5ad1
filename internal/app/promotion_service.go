package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/jobtrack/internal/core/posting"
	"github.com/example/jobtrack/internal/ports/primary"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// PromotionServiceImpl implements the PromotionService interface.
type PromotionServiceImpl struct {
	postingRepo secondary.PostingRepository
	logWriter   secondary.LogWriter
	logger      *slog.Logger
	now         func() time.Time
}

// NewPromotionService creates a new PromotionService with injected dependencies.
func NewPromotionService(
	postingRepo secondary.PostingRepository,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
	now func() time.Time,
) *PromotionServiceImpl {
	return &PromotionServiceImpl{
		postingRepo: postingRepo,
		logWriter:   logWriter,
		logger:      logger,
		now:         now,
	}
}

// Promote copies a staged posting into the durable store.
// Not-found and duplicate-link failures keep their distinct kinds.
func (s *PromotionServiceImpl) Promote(ctx context.Context, stagingID int64) (*primary.PromoteResponse, error) {
	id, err := s.postingRepo.Promote(ctx, stagingID, posting.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to promote staged posting %d: %w", stagingID, err)
	}

	if err := s.logWriter.LogCreate(ctx, id); err != nil {
		s.logger.Warn("failed to write posting history", "posting_id", id, "error", err)
	}
	s.logger.Debug("promoted posting", "staging_id", stagingID, "posting_id", id)

	record, err := s.postingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch promoted posting: %w", err)
	}

	return &primary.PromoteResponse{
		StagingID: stagingID,
		PostingID: id,
		Posting:   recordToPosting(record),
	}, nil
}

// Ensure PromotionServiceImpl implements the interface.
var _ primary.PromotionService = (*PromotionServiceImpl)(nil)
