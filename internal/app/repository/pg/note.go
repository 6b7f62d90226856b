package pg

import (
	"database/sql"
	"sync"

	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/model"
)

// PostgresDB is the alternate NoteDAO backend, selected with
// ECHONOTE_DB=postgres.
type PostgresDB struct {
	db *sql.DB
	mu sync.Mutex
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) Insert(note model.VoiceNote) error {
	pdb.mu.Lock()
	defer pdb.mu.Unlock()

	insertSQL := `INSERT INTO voice_notes (id, filename, title, created_at, duration, transcript) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := pdb.db.Exec(insertSQL, note.ID, note.Filename, note.Title, note.CreatedAt, note.Duration, note.Transcript)
	if err != nil {
		return apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

func (pdb *PostgresDB) Rename(id, newTitle string) error {
	return pdb.updateColumn(id, `UPDATE voice_notes SET title = $1 WHERE id = $2`, newTitle)
}

func (pdb *PostgresDB) UpdateTranscript(id, transcript string) error {
	return pdb.updateColumn(id, `UPDATE voice_notes SET transcript = $1 WHERE id = $2`, transcript)
}

func (pdb *PostgresDB) updateColumn(id, query, value string) error {
	pdb.mu.Lock()
	defer pdb.mu.Unlock()

	res, err := pdb.db.Exec(query, value, id)
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

func (pdb *PostgresDB) Delete(id string) error {
	pdb.mu.Lock()
	defer pdb.mu.Unlock()

	res, err := pdb.db.Exec(`DELETE FROM voice_notes WHERE id = $1`, id)
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

func (pdb *PostgresDB) GetByID(id string) (model.VoiceNote, error) {
	row := pdb.db.QueryRow(
		`SELECT id, filename, title, created_at, duration, transcript FROM voice_notes WHERE id = $1`, id)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return model.VoiceNote{}, apperrors.ErrNotFound
	}
	if err != nil {
		return model.VoiceNote{}, apperrors.WrapSentinel(apperrors.ErrPersistenceFailure, err)
	}
	return note, nil
}

func (pdb *PostgresDB) ListAll() ([]model.VoiceNote, error) {
	rows, err := pdb.db.Query(
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
