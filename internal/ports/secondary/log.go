package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the command origin from context.
type LogWriter interface {
	// LogCreate logs the creation of a posting.
	LogCreate(ctx context.Context, postingID int64) error

	// LogUpdate logs an update of a posting field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, postingID int64, fieldName, oldValue, newValue string) error

	// LogDelete logs the deletion of a posting.
	LogDelete(ctx context.Context, postingID int64) error
}
