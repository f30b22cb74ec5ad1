package sqlite

import (
	"context"

	"github.com/example/jobtrack/internal/ctxutil"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using HistoryRepository.
type LogWriterAdapter struct {
	historyRepo secondary.HistoryRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(historyRepo secondary.HistoryRepository) *LogWriterAdapter {
	return &LogWriterAdapter{historyRepo: historyRepo}
}

// LogCreate logs the creation of a posting.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, postingID int64) error {
	return w.writeLog(ctx, postingID, "create", "", "", "")
}

// LogUpdate logs an update of a posting field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, postingID int64, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, postingID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs the deletion of a posting.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, postingID int64) error {
	return w.writeLog(ctx, postingID, "delete", "", "", "")
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, postingID int64, action, fieldName, oldValue, newValue string) error {
	return w.historyRepo.Create(ctx, &secondary.HistoryRecord{
		PostingID: postingID,
		Action:    action,
		FieldName: fieldName,
		OldValue:  oldValue,
		NewValue:  newValue,
		Origin:    ctxutil.OriginFromContext(ctx),
	})
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
