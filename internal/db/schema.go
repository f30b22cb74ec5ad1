package db

import (
	"database/sql"
	"fmt"

	"github.com/example/jobtrack/internal/core/settings"
)

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Repository tests
// load it via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so a
// column referenced by repository code but missing here fails with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Bump the version list so fresh installs skip the new migration
const SchemaSQL = `
-- Staged postings (fresh fetch results awaiting review)
CREATE TABLE IF NOT EXISTS staged_postings (
	id INTEGER PRIMARY KEY,
	company_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL UNIQUE,
	date_posted TEXT NOT NULL DEFAULT '',
	fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_staged_postings_date ON staged_postings(date_posted);

-- Postings (the durable record). AUTOINCREMENT keeps ids monotonic across deletes.
CREATE TABLE IF NOT EXISTS postings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	company_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL UNIQUE,
	date_posted TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL CHECK(status IN ('fetched', 'applied', 'interview', 'offer', 'rejected', 'read')) DEFAULT 'fetched',
	last_update TEXT,
	staged_id INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_postings_date ON postings(date_posted);
CREATE INDEX IF NOT EXISTS idx_postings_status ON postings(status);

-- Settings (exactly one row)
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK(id = 1),
	search TEXT NOT NULL,
	region TEXT NOT NULL,
	radius INTEGER NOT NULL,
	amount INTEGER NOT NULL
);

-- Posting history (audit trail of durable store mutations, survives deletes)
CREATE TABLE IF NOT EXISTS posting_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	posting_id INTEGER NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	origin TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_posting_history_posting ON posting_history(posting_id);
`

// InitSchema creates the database schema and seeds the default settings row.
// Safe to call on every start.
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Databases written by the first revision only carry the internships table
		var legacyCount int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='internships'").Scan(&legacyCount)
		if err != nil {
			return err
		}

		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}

		if legacyCount == 0 {
			// Completely fresh install - mark all migrations as applied
			if err := createVersionTable(db); err != nil {
				return err
			}
			for _, m := range migrations {
				if _, err := db.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (?)", m.Version); err != nil {
					return err
				}
			}
		}
	} else if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}

	if err := RunMigrations(db); err != nil {
		return err
	}

	return seedSettings(db)
}

// seedSettings inserts the default settings row if the table is empty.
func seedSettings(db *sql.DB) error {
	d := settings.Default()
	_, err := db.Exec(
		"INSERT OR IGNORE INTO settings (id, search, region, radius, amount) VALUES (1, ?, ?, ?, ?)",
		d.Search, d.Region, d.Radius, d.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
