package pg

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/model"
)

func newMockedDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newWithDB(db), mock
}

func TestInsertExecutesExpectedSQL(t *testing.T) {
	pdb, mock := newMockedDB(t)

	createdAt := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO voice_notes`).
		WithArgs("n1", "recording_1_a.m4a", "Recording", createdAt, 5.0, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pdb.Insert(model.VoiceNote{
		ID:        "n1",
		Filename:  "recording_1_a.m4a",
		Title:     "Recording",
		CreatedAt: createdAt,
		Duration:  5.0,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMapsFailureToPersistenceFailure(t *testing.T) {
	pdb, mock := newMockedDB(t)

	mock.ExpectExec(`INSERT INTO voice_notes`).
		WillReturnError(sql.ErrConnDone)

	err := pdb.Insert(model.VoiceNote{ID: "n1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPersistenceFailure)
}

func TestConcurrentRenameAndTranscriptSerialized(t *testing.T) {
	pdb, mock := newMockedDB(t)

	// Both single-column updates must go through, whichever wins the lock.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectExec(`UPDATE voice_notes SET title`).
		WithArgs("Renamed mid-flight", "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE voice_notes SET transcript`).
		WithArgs("hello world", "n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, pdb.Rename("n1", "Renamed mid-flight"))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, pdb.UpdateTranscript("n1", "hello world"))
	}()
	wg.Wait()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteZeroRowsIsNotFound(t *testing.T) {
	pdb, mock := newMockedDB(t)

	mock.ExpectExec(`DELETE FROM voice_notes`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, pdb.Delete("ghost"), apperrors.ErrNotFound)
}

func TestUpdateTranscriptZeroRowsIsNotFound(t *testing.T) {
	pdb, mock := newMockedDB(t)

	mock.ExpectExec(`UPDATE voice_notes SET transcript`).
		WithArgs("late text", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, pdb.UpdateTranscript("ghost", "late text"), apperrors.ErrNotFound)
}

func TestGetByIDScansTranscript(t *testing.T) {
	pdb, mock := newMockedDB(t)

	createdAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "filename", "title", "created_at", "duration", "transcript"}).
		AddRow("n1", "recording_1_a.m4a", "Recording", createdAt, 5.0, "hello world")

	mock.ExpectQuery(`SELECT id, filename, title, created_at, duration, transcript FROM voice_notes WHERE`).
		WithArgs("n1").
		WillReturnRows(rows)

	note, err := pdb.GetByID("n1")
	require.NoError(t, err)
	require.NotNil(t, note.Transcript)
	assert.Equal(t, "hello world", *note.Transcript)
}

func TestGetByIDMissingIsNotFound(t *testing.T) {
	pdb, mock := newMockedDB(t)

	mock.ExpectQuery(`SELECT id, filename, title, created_at, duration, transcript FROM voice_notes WHERE`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := pdb.GetByID("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListAllOrdersByCreatedAtDesc(t *testing.T) {
	pdb, mock := newMockedDB(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "filename", "title", "created_at", "duration", "transcript"}).
		AddRow("new", "recording_2_b.m4a", "B", now, 3.0, nil).
		AddRow("old", "recording_1_a.m4a", "A", now.Add(-time.Hour), 5.0, nil)

	mock.ExpectQuery(`SELECT id, filename, title, created_at, duration, transcript FROM voice_notes ORDER BY created_at DESC`).
		WillReturnRows(rows)

	notes, err := pdb.ListAll()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "new", notes[0].ID)
	assert.Nil(t, notes[0].Transcript)
}
