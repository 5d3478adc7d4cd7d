package db

import (
	"testing"
)

// setupTestDB creates an in-memory database with the full schema and seed
// data for repository tests.
func setupTestDB(t *testing.T) *Database {
	t.Helper()

	database, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Seed(); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// insertHelper adds a helper row directly, bypassing the repository.
func insertHelper(t *testing.T, database *Database, name, phone string) int64 {
	t.Helper()

	res, err := database.GetDB().Exec(
		"INSERT INTO helpers (name, phone_number, active) VALUES (?, ?, 1)",
		name, phone,
	)
	if err != nil {
		t.Fatalf("failed to insert helper: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read helper id: %v", err)
	}
	return id
}

// closeCase marks a case closed directly, the way the CRUD UI would.
func closeCase(t *testing.T, database *Database, caseID int64) {
	t.Helper()

	if _, err := database.GetDB().Exec(
		"UPDATE cases SET state = 'closed', close_date = strftime('%s','now') WHERE id = ?",
		caseID,
	); err != nil {
		t.Fatalf("failed to close case: %v", err)
	}
}

func countRows(t *testing.T, database *Database, table string) int {
	t.Helper()

	var n int
	if err := database.GetDB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
