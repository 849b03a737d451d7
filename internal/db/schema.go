package db

import "fmt"

// sqliteSchema is the full SQLite database schema.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS items (
    id            INTEGER PRIMARY KEY,
    title         TEXT NOT NULL CHECK (title <> ''),
    category      TEXT NOT NULL,
    price         NUMERIC NOT NULL CHECK (price >= 0),
    location      TEXT,
    contact_email TEXT NOT NULL,
    description   TEXT,
    image         TEXT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_category_created
    ON items(category, created_at DESC);

CREATE TABLE IF NOT EXISTS emails (
    id         INTEGER PRIMARY KEY,
    from_email TEXT NOT NULL,
    to_email   TEXT NOT NULL,
    message    TEXT NOT NULL,
    item_id    INTEGER NOT NULL REFERENCES items(id),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS objects (
    bucket       TEXT NOT NULL,
    key          TEXT NOT NULL,
    content_type TEXT NOT NULL,
    data         BLOB NOT NULL,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (bucket, key)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// postgresSchema mirrors sqliteSchema for PostgreSQL.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS items (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL CHECK (title <> ''),
    category      TEXT NOT NULL,
    price         NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
    location      TEXT,
    contact_email TEXT NOT NULL,
    description   TEXT,
    image         TEXT,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_items_category_created
    ON items(category, created_at DESC);

CREATE TABLE IF NOT EXISTS emails (
    id         BIGSERIAL PRIMARY KEY,
    from_email TEXT NOT NULL,
    to_email   TEXT NOT NULL,
    message    TEXT NOT NULL,
    item_id    BIGINT NOT NULL REFERENCES items(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS objects (
    bucket       TEXT NOT NULL,
    key          TEXT NOT NULL,
    content_type TEXT NOT NULL,
    data         BYTEA NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (bucket, key)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *DB) error {
	schema := sqliteSchema
	if db.Driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
