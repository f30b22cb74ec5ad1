package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/posting"
	"github.com/example/jobtrack/internal/ports/primary"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// PostingServiceImpl implements the PostingService interface.
type PostingServiceImpl struct {
	postingRepo secondary.PostingRepository
	logWriter   secondary.LogWriter
	logger      *slog.Logger
	now         func() time.Time
}

// NewPostingService creates a new PostingService with injected dependencies.
func NewPostingService(
	postingRepo secondary.PostingRepository,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
	now func() time.Time,
) *PostingServiceImpl {
	return &PostingServiceImpl{
		postingRepo: postingRepo,
		logWriter:   logWriter,
		logger:      logger,
		now:         now,
	}
}

// AddPosting inserts a posting directly into the durable store.
func (s *PostingServiceImpl) AddPosting(ctx context.Context, req primary.AddPostingRequest) (*primary.AddPostingResponse, error) {
	record := &secondary.PostingRecord{
		Company:    req.Company,
		Position:   req.Position,
		Location:   req.Location,
		Link:       req.Link,
		DatePosted: req.DatePosted,
		Status:     string(posting.InitialStatus()),
		LastUpdate: posting.Today(s.now()),
	}

	id, err := s.postingRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create posting: %w", err)
	}
	s.audit(s.logWriter.LogCreate(ctx, id), id)

	created, err := s.postingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created posting: %w", err)
	}

	return &primary.AddPostingResponse{
		PostingID: id,
		Posting:   recordToPosting(created),
	}, nil
}

// GetPosting retrieves a durable posting by ID.
func (s *PostingServiceImpl) GetPosting(ctx context.Context, id int64) (*primary.Posting, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid posting id %d", failure.ErrInvalidArgument, id)
	}

	record, err := s.postingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToPosting(record), nil
}

// ListPostings retrieves all durable postings, most recently posted first.
func (s *PostingServiceImpl) ListPostings(ctx context.Context) ([]*primary.Posting, error) {
	records, err := s.postingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}

	postings := make([]*primary.Posting, len(records))
	for i, r := range records {
		postings[i] = recordToPosting(r)
	}
	return postings, nil
}

// UpdateStatus sets a new status and refreshes last_update.
// Ids above MaxID are rejected before the posting is looked up.
func (s *PostingServiceImpl) UpdateStatus(ctx context.Context, req primary.UpdateStatusRequest) error {
	maxID, err := s.postingRepo.MaxID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get max posting id: %w", err)
	}

	guardCtx := posting.UpdateStatusContext{
		PostingID: req.PostingID,
		MaxID:     maxID,
		NewStatus: req.Status,
	}
	if result := posting.CanUpdateStatus(guardCtx); !result.Allowed {
		return result.Error()
	}

	current, err := s.postingRepo.GetByID(ctx, req.PostingID)
	if err != nil {
		return err
	}

	change := posting.ApplyStatusChange(req.Status, s.now())
	if err := s.postingRepo.UpdateStatus(ctx, req.PostingID, change); err != nil {
		return err
	}
	s.audit(s.logWriter.LogUpdate(ctx, req.PostingID, "status", current.Status, string(change.NewStatus)), req.PostingID)

	return nil
}

// DeletePosting removes a durable posting.
func (s *PostingServiceImpl) DeletePosting(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid posting id %d", failure.ErrInvalidArgument, id)
	}

	if err := s.postingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit(s.logWriter.LogDelete(ctx, id), id)

	return nil
}

// MaxID returns the highest durable id, or 0 when the store is empty.
func (s *PostingServiceImpl) MaxID(ctx context.Context) (int64, error) {
	return s.postingRepo.MaxID(ctx)
}

// audit reports a history write failure. The mutation itself already committed.
func (s *PostingServiceImpl) audit(err error, postingID int64) {
	if err != nil {
		s.logger.Warn("failed to write posting history", "posting_id", postingID, "error", err)
	}
}

func recordToPosting(r *secondary.PostingRecord) *primary.Posting {
	return &primary.Posting{
		ID:         r.ID,
		Company:    r.Company,
		Position:   r.Position,
		Location:   r.Location,
		Link:       r.Link,
		DatePosted: r.DatePosted,
		Status:     posting.Status(r.Status),
		LastUpdate: r.LastUpdate,
		StagedID:   r.StagedID,
		CreatedAt:  r.CreatedAt,
	}
}

// Ensure PostingServiceImpl implements the interface.
var _ primary.PostingService = (*PostingServiceImpl)(nil)
