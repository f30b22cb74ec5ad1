// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the single point where the database schema is loaded for tests.
// setupTestDB runs db.InitSchema, which applies db.GetSchemaSQL() and seeds the
// settings row, so tests run against the authoritative schema.
//
// Do not hardcode CREATE TABLE statements in test files. Use setupTestDB and
// the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// A single connection keeps every statement on the same in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if err := db.InitSchema(testDB); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedStaged inserts a staged posting and returns its ID.
func seedStaged(t *testing.T, db *sql.DB, link, datePosted string) int64 {
	t.Helper()
	if datePosted == "" {
		datePosted = "2026-01-15"
	}
	result, err := db.Exec(
		"INSERT INTO staged_postings (company_name, position, location, link, date_posted) VALUES (?, ?, ?, ?, ?)",
		"Test Company", "Test Position", "Kiel", link, datePosted,
	)
	if err != nil {
		t.Fatalf("failed to seed staged posting: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// candidate builds an ingest candidate for link.
func candidate(link, datePosted string) ingest.Candidate {
	return ingest.Candidate{
		Company:    "Company " + link,
		Position:   "Werkstudent",
		Location:   "Kiel",
		Link:       link,
		DatePosted: datePosted,
	}
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
