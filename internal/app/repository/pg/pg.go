package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS voice_notes (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL UNIQUE,
	title      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	duration   DOUBLE PRECISION NOT NULL,
	transcript TEXT
)`

// NewPostgresDB connects to postgres and ensures the schema exists.
func NewPostgresDB(dsn string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create voice_notes table: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// newWithDB wraps an existing connection; used by tests with sqlmock.
func newWithDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}
