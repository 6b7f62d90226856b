package sqlite

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/model"
)

// SQLiteDB is the default NoteDAO backend. A store-wide mutex serializes
// writers; readers go straight to the database.
type SQLiteDB struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteDB opens (and if needed creates) the metadata database.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := openDB(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Insert(note model.VoiceNote) error {
	sdb.mu.Lock()
	defer sdb.mu.Unlock()

	insertSQL := `INSERT INTO voice_notes (id, filename, title, created_at, duration, transcript) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := sdb.db.Exec(insertSQL, note.ID, note.Filename, note.Title, note.CreatedAt, note.Duration, note.Transcript)
	if err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

func (sdb *SQLiteDB) Rename(id, newTitle string) error {
	return sdb.updateColumn(id, `UPDATE voice_notes SET title = ? WHERE id = ?`, newTitle)
}

func (sdb *SQLiteDB) UpdateTranscript(id, transcript string) error {
	return sdb.updateColumn(id, `UPDATE voice_notes SET transcript = ? WHERE id = ?`, transcript)
}

func (sdb *SQLiteDB) updateColumn(id, query, value string) error {
	sdb.mu.Lock()
	defer sdb.mu.Unlock()

	res, err := sdb.db.Exec(query, value, id)
	if err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (sdb *SQLiteDB) Delete(id string) error {
	sdb.mu.Lock()
	defer sdb.mu.Unlock()

	res, err := sdb.db.Exec(`DELETE FROM voice_notes WHERE id = ?`, id)
	if err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (sdb *SQLiteDB) GetByID(id string) (model.VoiceNote, error) {
	row := sdb.db.QueryRow(
		`SELECT id, filename, title, created_at, duration, transcript FROM voice_notes WHERE id = ?`, id)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return model.VoiceNote{}, apperrors.ErrNotFound
	}
	if err != nil {
		return model.VoiceNote{}, apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	return note, nil
}

func (sdb *SQLiteDB) ListAll() ([]model.VoiceNote, error) {
	rows, err := sdb.db.Query(
		`SELECT id, filename, title, created_at, duration, transcript FROM voice_notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	notes := make([]model.VoiceNote, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	return notes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (model.VoiceNote, error) {
	var note model.VoiceNote
	var transcript sql.NullString
	err := row.Scan(&note.ID, &note.Filename, &note.Title, &note.CreatedAt, &note.Duration, &transcript)
	if err != nil {
		return model.VoiceNote{}, err
	}
	if transcript.Valid {
		note.Transcript = &transcript.String
	}
	return note, nil
}
