package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS voice_notes (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL UNIQUE,
	title      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	duration   REAL NOT NULL,
	transcript TEXT
);
CREATE INDEX IF NOT EXISTS idx_voice_notes_created_at ON voice_notes (created_at DESC);
`

func openDB(dbFilePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbFilePath, err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create voice_notes table: %w", err)
	}

	return db, nil
}
