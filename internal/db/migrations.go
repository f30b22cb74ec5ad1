package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "import_legacy_internships",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_staged_id_to_postings",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "create_posting_history",
		Up:      migrationV3,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations applies every migration newer than the recorded schema version.
// Each migration and its version record commit in one transaction.
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	// Get current schema version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		slog.Info("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return v, nil
}

// LatestVersion returns the version a fully migrated database reports.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

func tableExists(tx *sql.Tx, name string) (bool, error) {
	var n int
	err := tx.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n)
	return n > 0, err
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// migrationV1 copies the single-table layout of the first revision into postings.
// Ids are kept so the numbers users already know stay valid; AUTOINCREMENT
// continues after the highest imported id.
func migrationV1(tx *sql.Tx) error {
	exists, err := tableExists(tx, "internships")
	if err != nil {
		return fmt.Errorf("failed to inspect internships table: %w", err)
	}
	if !exists {
		return nil
	}

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO postings (id, company_name, position, location, link, date_posted, status)
		SELECT
			id,
			COALESCE(company_name, ''),
			COALESCE(position, ''),
			COALESCE(location, ''),
			link,
			COALESCE(date_posted, ''),
			CASE WHEN status IN ('fetched', 'applied', 'interview', 'offer', 'rejected', 'read')
				THEN status ELSE 'fetched' END
		FROM internships
		WHERE link IS NOT NULL AND link != ''
	`)
	if err != nil {
		return fmt.Errorf("failed to copy internships: %w", err)
	}

	if _, err := tx.Exec(`DROP TABLE internships`); err != nil {
		return fmt.Errorf("failed to drop internships table: %w", err)
	}

	return nil
}

// migrationV2 records which staged posting a durable posting was promoted from.
func migrationV2(tx *sql.Tx) error {
	exists, err := columnExists(tx, "postings", "staged_id")
	if err != nil {
		return fmt.Errorf("failed to inspect postings table: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`ALTER TABLE postings ADD COLUMN staged_id INTEGER`); err != nil {
		return fmt.Errorf("failed to add staged_id column: %w", err)
	}
	return nil
}

// migrationV3 adds the posting history table.
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
	`)
	if err != nil {
		return fmt.Errorf("failed to create posting_history table: %w", err)
	}
	return nil
}
