package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/posting"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// PostingRepository implements secondary.PostingRepository with SQLite.
// Ids come from the AUTOINCREMENT sequence and are never reused after a delete.
type PostingRepository struct {
	db *sql.DB
}

// NewPostingRepository creates a new SQLite posting repository.
func NewPostingRepository(db *sql.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

const postingColumns = `id, company_name, position, location, link, date_posted, status, last_update, staged_id, created_at`

// Create persists a new posting and returns its assigned ID.
// An empty status defaults to the initial status.
func (r *PostingRepository) Create(ctx context.Context, record *secondary.PostingRecord) (int64, error) {
	status := posting.Status(record.Status)
	if status == "" {
		status = posting.InitialStatus()
	}
	if !status.Valid() {
		return 0, fmt.Errorf("failed to create posting: %w: unknown status %q", failure.ErrInvalidArgument, record.Status)
	}
	if record.Link == "" {
		return 0, fmt.Errorf("failed to create posting: %w: link is required", failure.ErrInvalidArgument)
	}

	id, err := insertPosting(ctx, r.db, record, status)
	if err != nil {
		return 0, classify("failed to create posting", err)
	}

	record.ID = id
	record.Status = string(status)
	return id, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPosting(ctx context.Context, e execer, record *secondary.PostingRecord, status posting.Status) (int64, error) {
	var (
		lastUpdate sql.NullString
		stagedID   sql.NullInt64
	)
	if record.LastUpdate != "" {
		lastUpdate = sql.NullString{String: record.LastUpdate, Valid: true}
	}
	if record.StagedID > 0 {
		stagedID = sql.NullInt64{Int64: record.StagedID, Valid: true}
	}

	result, err := e.ExecContext(ctx,
		`INSERT INTO postings (company_name, position, location, link, date_posted, status, last_update, staged_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Company, record.Position, record.Location, record.Link, record.DatePosted,
		string(status), lastUpdate, stagedID,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Promote copies a staged posting into the durable store.
// Bounds check, lookup, link check and insert run in one transaction, so two
// promotions of the same staged posting cannot both pass the checks.
func (r *PostingRepository) Promote(ctx context.Context, stagingID int64, lastUpdate string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("failed to begin promotion", err)
	}
	defer tx.Rollback()

	maxStaged, err := maxID(ctx, tx, "staged_postings")
	if err != nil {
		return 0, classify("failed to get max staged id", err)
	}

	guardCtx := posting.PromoteContext{
		StagingID:    stagingID,
		MaxStagingID: maxStaged,
	}

	record := &secondary.PostingRecord{StagedID: stagingID, LastUpdate: lastUpdate}
	if stagingID > 0 && stagingID <= maxStaged {
		err = tx.QueryRowContext(ctx,
			"SELECT company_name, position, location, link, date_posted FROM staged_postings WHERE id = ?",
			stagingID,
		).Scan(&record.Company, &record.Position, &record.Location, &record.Link, &record.DatePosted)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return 0, classify("failed to read staged posting", err)
		default:
			guardCtx.StagingExists = true
		}
	}

	if guardCtx.StagingExists {
		var stored int
		err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM postings WHERE link = ?", record.Link).Scan(&stored)
		if err != nil {
			return 0, classify("failed to check stored link", err)
		}
		guardCtx.LinkStored = stored > 0
	}

	if result := posting.CanPromote(guardCtx); !result.Allowed {
		return 0, result.Error()
	}

	id, err := insertPosting(ctx, tx, record, posting.InitialStatus())
	if err != nil {
		return 0, classify("failed to promote posting", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, classify("failed to commit promotion", err)
	}

	return id, nil
}

// GetByID retrieves a posting by its ID.
func (r *PostingRepository) GetByID(ctx context.Context, id int64) (*secondary.PostingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+postingColumns+" FROM postings WHERE id = ?",
		id,
	)

	record, err := scanPosting(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("posting %d: %w", id, failure.ErrNotFound)
	}
	if err != nil {
		return nil, classify("failed to get posting", err)
	}

	return record, nil
}

// List retrieves all postings ordered by date_posted descending.
func (r *PostingRepository) List(ctx context.Context) ([]*secondary.PostingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+postingColumns+" FROM postings ORDER BY date_posted DESC, id DESC",
	)
	if err != nil {
		return nil, classify("failed to list postings", err)
	}
	defer rows.Close()

	var records []*secondary.PostingRecord
	for rows.Next() {
		record, err := scanPosting(rows)
		if err != nil {
			return nil, classify("failed to scan posting", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("failed to list postings", err)
	}

	return records, nil
}

// UpdateStatus writes a new status and last_update date.
func (r *PostingRepository) UpdateStatus(ctx context.Context, id int64, change posting.StatusChange) error {
	if !change.NewStatus.Valid() {
		return fmt.Errorf("failed to update posting: %w: unknown status %q", failure.ErrInvalidArgument, change.NewStatus)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE postings SET status = ?, last_update = ? WHERE id = ?",
		string(change.NewStatus), change.LastUpdate, id,
	)
	if err != nil {
		return classify("failed to update posting", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("no such posting %d: %w", id, failure.ErrNotFound)
	}

	return nil
}

// Delete removes a posting from persistence.
func (r *PostingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM postings WHERE id = ?", id)
	if err != nil {
		return classify("failed to delete posting", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("posting %d: %w", id, failure.ErrNotFound)
	}

	return nil
}

// MaxID returns the highest existing posting id, or 0 when the store is empty.
func (r *PostingRepository) MaxID(ctx context.Context) (int64, error) {
	id, err := maxID(ctx, r.db, "postings")
	if err != nil {
		return 0, classify("failed to get max posting id", err)
	}
	return id, nil
}

func scanPosting(s rowScanner) (*secondary.PostingRecord, error) {
	var (
		lastUpdate sql.NullString
		stagedID   sql.NullInt64
		createdAt  sql.NullTime
	)

	record := &secondary.PostingRecord{}
	err := s.Scan(&record.ID, &record.Company, &record.Position, &record.Location, &record.Link,
		&record.DatePosted, &record.Status, &lastUpdate, &stagedID, &createdAt)
	if err != nil {
		return nil, err
	}

	record.LastUpdate = lastUpdate.String
	record.StagedID = stagedID.Int64
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

// Ensure PostingRepository implements the interface.
var _ secondary.PostingRepository = (*PostingRepository)(nil)
