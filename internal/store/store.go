// Package store is the SQL-backed client for listings, contact messages,
// uploaded objects and settings.
package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/trznica/internal/db"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store runs queries against a database.
type Store struct {
	db *db.DB
	sb sq.StatementBuilderType
}

// New returns a store backed by database.
func New(database *db.DB) *Store {
	return &Store{db: database, sb: database.Builder()}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
