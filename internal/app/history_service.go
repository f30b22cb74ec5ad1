package app

import (
	"context"
	"fmt"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/ports/primary"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	historyRepo secondary.HistoryRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(historyRepo secondary.HistoryRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{historyRepo: historyRepo}
}

// ListHistory retrieves the history of one durable posting.
func (s *HistoryServiceImpl) ListHistory(ctx context.Context, postingID int64) ([]*primary.HistoryEntry, error) {
	if postingID <= 0 {
		return nil, fmt.Errorf("%w: invalid posting id %d", failure.ErrInvalidArgument, postingID)
	}

	records, err := s.historyRepo.ListByPosting(ctx, postingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*primary.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.HistoryEntry{
			ID:        r.ID,
			PostingID: r.PostingID,
			Action:    r.Action,
			FieldName: r.FieldName,
			OldValue:  r.OldValue,
			NewValue:  r.NewValue,
			Origin:    r.Origin,
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}

// Ensure HistoryServiceImpl implements the interface.
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
