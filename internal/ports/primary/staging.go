package primary

import "context"

// StagingService defines the primary port for staged posting operations.
type StagingService interface {
	// ListStaged retrieves all staged postings, oldest first.
	ListStaged(ctx context.Context) ([]*StagedPosting, error)

	// GetStaged retrieves a staged posting by ID.
	GetStaged(ctx context.Context, id int64) (*StagedPosting, error)

	// ClearStaging removes every staged posting. Clearing an empty staging area succeeds.
	ClearStaging(ctx context.Context) (int, error)
}

// StagedPosting represents a staged posting at the port boundary.
type StagedPosting struct {
	ID         int64
	Company    string
	Position   string
	Location   string
	Link       string
	DatePosted string
	FetchedAt  string
}
