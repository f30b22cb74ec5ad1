package primary

import (
	"context"

	"github.com/example/jobtrack/internal/core/posting"
)

// PostingService defines the primary port for durable posting operations.
type PostingService interface {
	// AddPosting inserts a posting directly into the durable store.
	AddPosting(ctx context.Context, req AddPostingRequest) (*AddPostingResponse, error)

	// GetPosting retrieves a durable posting by ID.
	GetPosting(ctx context.Context, id int64) (*Posting, error)

	// ListPostings retrieves all durable postings, most recently posted first.
	ListPostings(ctx context.Context) ([]*Posting, error)

	// UpdateStatus sets a new status and refreshes last_update.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) error

	// DeletePosting removes a durable posting.
	DeletePosting(ctx context.Context, id int64) error

	// MaxID returns the highest durable id, or 0 when the store is empty.
	MaxID(ctx context.Context) (int64, error)
}

// AddPostingRequest contains parameters for a direct insert.
type AddPostingRequest struct {
	Company    string
	Position   string
	Location   string
	Link       string
	DatePosted string
}

// AddPostingResponse contains the result of a direct insert.
type AddPostingResponse struct {
	PostingID int64
	Posting   *Posting
}

// UpdateStatusRequest contains parameters for a status update.
type UpdateStatusRequest struct {
	PostingID int64
	Status    posting.Status
}

// Posting represents a durable posting at the port boundary.
type Posting struct {
	ID         int64
	Company    string
	Position   string
	Location   string
	Link       string
	DatePosted string
	Status     posting.Status
	LastUpdate string
	StagedID   int64
	CreatedAt  string
}
