package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/jobtrack/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create appends a history entry.
func (r *HistoryRepository) Create(ctx context.Context, record *secondary.HistoryRecord) error {
	var fieldName, oldValue, newValue, origin sql.NullString
	if record.FieldName != "" {
		fieldName = sql.NullString{String: record.FieldName, Valid: true}
	}
	if record.OldValue != "" {
		oldValue = sql.NullString{String: record.OldValue, Valid: true}
	}
	if record.NewValue != "" {
		newValue = sql.NullString{String: record.NewValue, Valid: true}
	}
	if record.Origin != "" {
		origin = sql.NullString{String: record.Origin, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posting_history (posting_id, action, field_name, old_value, new_value, origin)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.PostingID, record.Action, fieldName, oldValue, newValue, origin,
	)
	if err != nil {
		return classify("failed to create history entry", err)
	}

	record.ID, _ = result.LastInsertId()
	return nil
}

// ListByPosting retrieves entries for a posting, oldest first.
func (r *HistoryRepository) ListByPosting(ctx context.Context, postingID int64) ([]*secondary.HistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, posting_id, action, field_name, old_value, new_value, origin, created_at
		 FROM posting_history WHERE posting_id = ? ORDER BY id ASC`,
		postingID,
	)
	if err != nil {
		return nil, classify("failed to list history", err)
	}
	defer rows.Close()

	var records []*secondary.HistoryRecord
	for rows.Next() {
		var (
			fieldName, oldValue, newValue, origin sql.NullString
			createdAt                             sql.NullTime
		)

		record := &secondary.HistoryRecord{}
		err := rows.Scan(&record.ID, &record.PostingID, &record.Action,
			&fieldName, &oldValue, &newValue, &origin, &createdAt)
		if err != nil {
			return nil, classify("failed to scan history entry", err)
		}

		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.Origin = origin.String
		if createdAt.Valid {
			record.CreatedAt = createdAt.Time.Format(time.RFC3339)
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("failed to list history", err)
	}

	return records, nil
}

// Ensure HistoryRepository implements the interface.
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
