package primary

import "context"

// HistoryService defines the primary port for the posting audit trail.
type HistoryService interface {
	// ListHistory retrieves the history of one durable posting, oldest first.
	// Entries remain available after the posting is deleted.
	ListHistory(ctx context.Context, postingID int64) ([]*HistoryEntry, error)
}

// HistoryEntry represents a posting history entry at the port boundary.
type HistoryEntry struct {
	ID        int64
	PostingID int64
	Action    string // 'create', 'update', 'delete'
	FieldName string // For updates only
	OldValue  string
	NewValue  string
	Origin    string // 'shell' or 'cli'
	CreatedAt string
}
