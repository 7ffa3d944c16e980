// Package db opens the SQLite store and manages its schema.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path. Connections get WAL journaling,
// a busy timeout so concurrent writers queue instead of failing, and
// enforced foreign keys.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := conn.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;
		PRAGMA synchronous = NORMAL;
	`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying pragmas: %w", err)
	}

	return conn, nil
}
