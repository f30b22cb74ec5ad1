package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// StagingRepository implements secondary.StagingRepository with SQLite.
type StagingRepository struct {
	db *sql.DB
}

// NewStagingRepository creates a new SQLite staging repository.
func NewStagingRepository(db *sql.DB) *StagingRepository {
	return &StagingRepository{db: db}
}

// IngestMany inserts candidates whose link is not yet staged, in one transaction.
// Duplicate links (already staged, or repeated within the batch) are skipped.
// Candidates without a link cannot be deduplicated and are skipped too.
func (r *StagingRepository) IngestMany(ctx context.Context, candidates []ingest.Candidate) (int, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, classify("failed to begin ingest", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO staged_postings (company_name, position, location, link, date_posted)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, 0, classify("failed to prepare ingest", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, c := range candidates {
		if c.Link == "" {
			continue
		}

		result, err := stmt.ExecContext(ctx, c.Company, c.Position, c.Location, c.Link, c.DatePosted)
		if err != nil {
			return 0, 0, classify("failed to stage posting", err)
		}

		rowsAffected, _ := result.RowsAffected()
		inserted += int(rowsAffected)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, classify("failed to commit ingest", err)
	}

	return len(candidates), inserted, nil
}

// List retrieves all staged postings ordered by date_posted ascending.
func (r *StagingRepository) List(ctx context.Context) ([]*secondary.StagedPostingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_name, position, location, link, date_posted, fetched_at
		 FROM staged_postings ORDER BY date_posted ASC, id ASC`,
	)
	if err != nil {
		return nil, classify("failed to list staged postings", err)
	}
	defer rows.Close()

	var records []*secondary.StagedPostingRecord
	for rows.Next() {
		record, err := scanStaged(rows)
		if err != nil {
			return nil, classify("failed to scan staged posting", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("failed to list staged postings", err)
	}

	return records, nil
}

// GetByID retrieves a staged posting by its ID.
func (r *StagingRepository) GetByID(ctx context.Context, id int64) (*secondary.StagedPostingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, company_name, position, location, link, date_posted, fetched_at
		 FROM staged_postings WHERE id = ?`,
		id,
	)

	record, err := scanStaged(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("staged posting %d: %w", id, failure.ErrNotFound)
	}
	if err != nil {
		return nil, classify("failed to get staged posting", err)
	}

	return record, nil
}

// Clear removes every staged posting.
func (r *StagingRepository) Clear(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM staged_postings")
	if err != nil {
		return 0, classify("failed to clear staging", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// MaxID returns the highest staged id, or 0 when staging is empty.
func (r *StagingRepository) MaxID(ctx context.Context) (int64, error) {
	id, err := maxID(ctx, r.db, "staged_postings")
	if err != nil {
		return 0, classify("failed to get max staged id", err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStaged(s rowScanner) (*secondary.StagedPostingRecord, error) {
	var fetchedAt sql.NullTime

	record := &secondary.StagedPostingRecord{}
	err := s.Scan(&record.ID, &record.Company, &record.Position, &record.Location,
		&record.Link, &record.DatePosted, &fetchedAt)
	if err != nil {
		return nil, err
	}

	if fetchedAt.Valid {
		record.FetchedAt = fetchedAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

// maxID reads the highest id of table. table is always a package constant.
func maxID(ctx context.Context, q querier, table string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM "+table).Scan(&id)
	return id, err
}

// Ensure StagingRepository implements the interface.
var _ secondary.StagingRepository = (*StagingRepository)(nil)
