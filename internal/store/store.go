// Package store keeps the per-session event journal in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database that disappears with the process.
const MemoryDSN = ":memory:"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store is a SQLite journal for one input session.
type Store struct {
	db      *sql.DB
	dsn     string
	session string
}

// New opens the database at dsn, runs migrations and starts a new session.
// Use MemoryDSN to keep nothing after the process exits.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{
		db:      db,
		dsn:     dsn,
		session: uuid.NewString(),
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO sessions (id) VALUES (?)`, s.session); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Session returns the id of the session this store journals.
func (s *Store) Session() string {
	return s.session
}
