// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/core/posting"
	"github.com/example/jobtrack/internal/core/settings"
)

// StagingRepository defines the secondary port for staged posting persistence.
type StagingRepository interface {
	// IngestMany inserts every candidate whose link is not yet staged.
	// Returns the number of candidates seen and the number actually inserted.
	IngestMany(ctx context.Context, candidates []ingest.Candidate) (seen, inserted int, err error)

	// List retrieves all staged postings, oldest date_posted first.
	List(ctx context.Context) ([]*StagedPostingRecord, error)

	// GetByID retrieves a staged posting by its ID.
	GetByID(ctx context.Context, id int64) (*StagedPostingRecord, error)

	// Clear removes every staged posting and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// MaxID returns the highest staged id, or 0 when staging is empty.
	MaxID(ctx context.Context) (int64, error)
}

// StagedPostingRecord represents a staged posting as stored in persistence.
type StagedPostingRecord struct {
	ID         int64
	Company    string
	Position   string
	Location   string
	Link       string
	DatePosted string
	FetchedAt  string
}

// PostingRepository defines the secondary port for durable posting persistence.
type PostingRepository interface {
	// Create persists a new posting and returns its assigned ID.
	Create(ctx context.Context, record *PostingRecord) (int64, error)

	// Promote copies a staged posting into the durable store in one transaction.
	Promote(ctx context.Context, stagingID int64, lastUpdate string) (int64, error)

	// GetByID retrieves a posting by its ID.
	GetByID(ctx context.Context, id int64) (*PostingRecord, error)

	// List retrieves all postings, newest date_posted first.
	List(ctx context.Context) ([]*PostingRecord, error)

	// UpdateStatus writes a new status and last_update date.
	UpdateStatus(ctx context.Context, id int64, change posting.StatusChange) error

	// Delete removes a posting from persistence.
	Delete(ctx context.Context, id int64) error

	// MaxID returns the highest existing posting id, or 0 when the store is empty.
	MaxID(ctx context.Context) (int64, error)
}

// PostingRecord represents a durable posting as stored in persistence.
type PostingRecord struct {
	ID         int64
	Company    string
	Position   string
	Location   string
	Link       string
	DatePosted string
	Status     string
	LastUpdate string
	StagedID   int64 // 0 when inserted directly
	CreatedAt  string
}

// SettingsRepository defines the secondary port for the settings row.
type SettingsRepository interface {
	// Get retrieves the single settings row.
	Get(ctx context.Context) (*settings.Settings, error)

	// UpdateField writes exactly one validated field.
	UpdateField(ctx context.Context, value settings.Value) error
}

// HistoryRepository defines the secondary port for the posting audit trail.
type HistoryRepository interface {
	// Create appends a history entry.
	Create(ctx context.Context, record *HistoryRecord) error

	// ListByPosting retrieves entries for a posting, oldest first.
	ListByPosting(ctx context.Context, postingID int64) ([]*HistoryRecord, error)
}

// HistoryRecord represents one audit entry as stored in persistence.
type HistoryRecord struct {
	ID        int64
	PostingID int64
	Action    string // "create", "update", "delete"
	FieldName string
	OldValue  string
	NewValue  string
	Origin    string
	CreatedAt string
}
