package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Database owns the sqlite connection and the schema used by the router:
// identity (contacts, phones, links, helpers), case threads, messages and the
// key/value settings table.
type Database struct {
	db *sql.DB
}

func NewDatabase(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is required")
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Verify we can actually connect to the database
	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("ping failed: %w, close failed: %v", err, closeErr)
		}
		return nil, err
	}

	// Foreign keys are off by default in sqlite
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("enable foreign keys failed: %w, close failed: %v", err, closeErr)
		}
		return nil, err
	}

	if err := createTables(db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("create tables failed: %w, close failed: %v", err, closeErr)
		}
		return nil, err
	}

	return &Database{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS phones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			number TEXT UNIQUE NOT NULL,
			comment TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS contact_phones (
			contact_id INTEGER NOT NULL,
			phone_id INTEGER NOT NULL,
			PRIMARY KEY (contact_id, phone_id),
			FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
			FOREIGN KEY (phone_id) REFERENCES phones(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS helpers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			phone_number TEXT UNIQUE NOT NULL,
			active BOOLEAN NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS cases (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			contact_id INTEGER NOT NULL,
			phone_number TEXT NOT NULL,
			helper_id INTEGER NOT NULL DEFAULT 0,
			state TEXT NOT NULL DEFAULT 'open',
			start_date INTEGER NOT NULL,
			close_date INTEGER,
			comments TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (contact_id) REFERENCES contacts(id)
		);

		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			phone_number TEXT NOT NULL,
			case_id INTEGER NOT NULL,
			sender_type_id INTEGER NOT NULL,
			message_type_id INTEGER NOT NULL,
			body TEXT NOT NULL,
			sent INTEGER NOT NULL,
			FOREIGN KEY (case_id) REFERENCES cases(id)
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_phones_number ON phones(number);
		CREATE INDEX IF NOT EXISTS idx_helpers_phone ON helpers(phone_number);
		CREATE INDEX IF NOT EXISTS idx_cases_contact ON cases(contact_id, start_date);
		CREATE INDEX IF NOT EXISTS idx_cases_state ON cases(state);
		CREATE INDEX IF NOT EXISTS idx_messages_case ON messages(case_id, sent);
	`)
	return err
}

// Seed installs default settings and a demo helper so a fresh database can
// route messages end to end. Existing rows are left alone.
func (d *Database) Seed() error {
	if d == nil || d.db == nil {
		return errors.New("database is not open")
	}

	defaults := map[string]string{
		"helptext.anonymize":              "0",
		"helptext.sms_automatic_response": "1",
		"helptext.sms_provider":           "log",
		"helptext.sender_type_id_contact": "2",
		"helptext.sender_type_id_user":    "3",
	}
	for key, value := range defaults {
		if _, err := d.db.Exec(
			"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)",
			key, value,
		); err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}

	if _, err := d.db.Exec(
		"INSERT OR IGNORE INTO helpers (name, phone_number, active) VALUES (?, ?, 1)",
		"On-call helper", "+10000000000",
	); err != nil {
		return fmt.Errorf("failed to seed helper: %w", err)
	}

	return nil
}

// GetDB exposes the underlying connection for the repositories.
func (d *Database) GetDB() *sql.DB {
	return d.db
}

func (d *Database) Close() error {
	if d == nil {
		return errors.New("database is nil")
	}

	if d.db == nil {
		return errors.New("database already closed")
	}

	err := d.db.Close()
	d.db = nil
	return err
}
