// Package store is the sqlite-backed metadata store for the authorization
// core. It implements the authentication and authorization metadata manager
// contracts consumed by pkg/authz, plus an insert-only decision log for
// audit. It stands in for the broker's embedded key-value config storage.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store provides user and ACL metadata operations.
type Store struct {
	db *sql.DB
}

// Open opens or creates a sqlite database at the given path and applies the
// schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// WAL mode lets concurrent evaluations read committed ACL updates
	// without blocking administrative writes.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Without a busy timeout concurrent writes immediately return
	// SQLITE_BUSY.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'enable',
		type TEXT NOT NULL DEFAULT 'normal',
		created_at INTEGER DEFAULT (strftime('%s', 'now')),
		updated_at INTEGER DEFAULT (strftime('%s', 'now'))
	);

	CREATE TABLE IF NOT EXISTS acls (
		subject_key TEXT NOT NULL,
		policy_type TEXT NOT NULL,
		entries TEXT NOT NULL,
		created_at INTEGER DEFAULT (strftime('%s', 'now')),
		updated_at INTEGER DEFAULT (strftime('%s', 'now')),
		PRIMARY KEY (subject_key, policy_type)
	);
	CREATE INDEX IF NOT EXISTS idx_acls_subject ON acls(subject_key);

	CREATE TABLE IF NOT EXISTS decision_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		request_id TEXT DEFAULT '',
		subject TEXT NOT NULL,
		resource TEXT NOT NULL,
		action TEXT NOT NULL,
		source_ip TEXT DEFAULT '',
		decision TEXT NOT NULL,
		code TEXT DEFAULT '',
		reason TEXT DEFAULT '',
		duration_us INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_decision_log_subject ON decision_log(subject);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
