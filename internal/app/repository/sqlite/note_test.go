package sqlite

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/model"
)

func newTestDB(t *testing.T) (*SQLiteDB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "echonote.db")
	db, err := NewSQLiteDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func sampleNote(id string, createdAt time.Time) model.VoiceNote {
	return model.VoiceNote{
		ID:        id,
		Filename:  "recording_" + id + ".m4a",
		Title:     model.DefaultTitle(createdAt),
		CreatedAt: createdAt,
		Duration:  5.0,
	}
}

func TestInsertAndGet(t *testing.T) {
	db, _ := newTestDB(t)

	note := sampleNote("n1", time.Now().UTC())
	require.NoError(t, db.Insert(note))

	got, err := db.GetByID("n1")
	require.NoError(t, err)
	assert.Equal(t, note.Filename, got.Filename)
	assert.Equal(t, note.Title, got.Title)
	assert.Equal(t, 5.0, got.Duration)
	assert.Nil(t, got.Transcript)
}

func TestListAllSortedByCreatedAtDescending(t *testing.T) {
	db, _ := newTestDB(t)

	base := time.Now().UTC()
	require.NoError(t, db.Insert(sampleNote("old", base.Add(-2*time.Hour))))
	require.NoError(t, db.Insert(sampleNote("new", base)))
	require.NoError(t, db.Insert(sampleNote("mid", base.Add(-time.Hour))))

	notes, err := db.ListAll()
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "new", notes[0].ID)
	assert.Equal(t, "mid", notes[1].ID)
	assert.Equal(t, "old", notes[2].ID)
}

func TestRename(t *testing.T) {
	db, _ := newTestDB(t)
	require.NoError(t, db.Insert(sampleNote("n1", time.Now().UTC())))

	require.NoError(t, db.Rename("n1", "Standup notes"))

	got, err := db.GetByID("n1")
	require.NoError(t, err)
	assert.Equal(t, "Standup notes", got.Title)

	assert.ErrorIs(t, db.Rename("ghost", "x"), apperrors.ErrNotFound)
}

func TestUpdateTranscript(t *testing.T) {
	db, _ := newTestDB(t)
	require.NoError(t, db.Insert(sampleNote("n1", time.Now().UTC())))
	require.NoError(t, db.Insert(sampleNote("n2", time.Now().UTC().Add(time.Second))))

	require.NoError(t, db.UpdateTranscript("n1", "hello world"))

	got, err := db.GetByID("n1")
	require.NoError(t, err)
	require.NotNil(t, got.Transcript)
	assert.Equal(t, "hello world", *got.Transcript)

	// The unrelated note is untouched.
	other, err := db.GetByID("n2")
	require.NoError(t, err)
	assert.Nil(t, other.Transcript)

	// A transcript arriving for a since-deleted note reports not-found.
	assert.ErrorIs(t, db.UpdateTranscript("ghost", "late"), apperrors.ErrNotFound)
}

func TestConcurrentRenameAndTranscriptBothSurvive(t *testing.T) {
	db, _ := newTestDB(t)
	require.NoError(t, db.Insert(sampleNote("n1", time.Now().UTC())))

	// A rename racing a transcript arrival on the same note must not lose
	// either write; each touches its own column under the store lock.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, db.Rename("n1", "Renamed mid-flight"))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, db.UpdateTranscript("n1", "hello world"))
	}()
	wg.Wait()

	got, err := db.GetByID("n1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed mid-flight", got.Title)
	require.NotNil(t, got.Transcript)
	assert.Equal(t, "hello world", *got.Transcript)
}

func TestDeleteTwiceYieldsSuccessThenNotFound(t *testing.T) {
	db, _ := newTestDB(t)
	require.NoError(t, db.Insert(sampleNote("n1", time.Now().UTC())))

	require.NoError(t, db.Delete("n1"))
	assert.ErrorIs(t, db.Delete("n1"), apperrors.ErrNotFound)

	notes, err := db.ListAll()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestInsertSurvivesReopen(t *testing.T) {
	db, path := newTestDB(t)
	require.NoError(t, db.Insert(sampleNote("n1", time.Now().UTC())))
	require.NoError(t, db.Close())

	// Simulates a crash after insert but before promotion: reopening the
	// store must reveal the row.
	reopened, err := NewSQLiteDB(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetByID("n1")
	require.NoError(t, err)
	assert.Equal(t, "n1", got.ID)
	assert.Nil(t, got.Transcript)
}

func TestDuplicateFilenameRejected(t *testing.T) {
	db, _ := newTestDB(t)

	a := sampleNote("n1", time.Now().UTC())
	b := sampleNote("n2", time.Now().UTC())
	b.Filename = a.Filename

	require.NoError(t, db.Insert(a))
	err := db.Insert(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPersistenceFailure)
}
