package blob

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "echonote/internal/app/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestOpenTempRemovesStaleFile(t *testing.T) {
	store := newTestStore(t)

	path := store.TempPath("session-1")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	got, err := store.OpenTemp("session-1")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.NoFileExists(t, path)
}

func TestPromoteMovesAtomically(t *testing.T) {
	store := newTestStore(t)

	temp, err := store.OpenTemp("session-2")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(temp, []byte("audio-bytes"), 0o644))

	finalName := NewFinalName(time.Now())
	require.NoError(t, store.Promote(temp, finalName))

	assert.NoFileExists(t, temp, "promote must move, not copy")
	assert.True(t, store.Exists(finalName))

	data, err := os.ReadFile(store.Path(finalName))
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))
}

func TestPromoteClobbersExistingDestination(t *testing.T) {
	store := newTestStore(t)

	finalName := NewFinalName(time.Now())
	require.NoError(t, os.WriteFile(store.Path(finalName), []byte("old"), 0o644))

	temp, err := store.OpenTemp("session-3")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(temp, []byte("new"), 0o644))

	require.NoError(t, store.Promote(temp, finalName))

	data, err := os.ReadFile(store.Path(finalName))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestPromoteMissingSourceRetainsNothingAndFails(t *testing.T) {
	store := newTestStore(t)

	err := store.Promote(store.TempPath("never-written"), NewFinalName(time.Now()))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPromotionFailed)
}

func TestPromoteFailureLeavesTempInPlace(t *testing.T) {
	store := newTestStore(t)

	temp, err := store.OpenTemp("session-4")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(temp, []byte("bytes"), 0o644))

	// A destination inside a non-existent directory forces the rename to fail.
	err = store.Promote(temp, filepath.Join("missing-subdir", "x.m4a"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPromotionFailed)
	assert.FileExists(t, temp, "failed promotion must keep the temp asset for diagnostics")
}

func TestDeleteMissingAssetIsAssetNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete("recording_0_none.m4a")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
}

func TestStaleTemps(t *testing.T) {
	store := newTestStore(t)

	oldTemp := store.TempPath("old-session")
	require.NoError(t, os.WriteFile(oldTemp, []byte("x"), 0o644))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldTemp, past, past))

	freshTemp := store.TempPath("fresh-session")
	require.NoError(t, os.WriteFile(freshTemp, []byte("x"), 0o644))

	// Permanent assets are never swept.
	require.NoError(t, os.WriteFile(store.Path(NewFinalName(time.Now())), []byte("x"), 0o644))

	stale, err := store.StaleTemps(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{oldTemp}, stale)
}

func TestNewFinalNamePattern(t *testing.T) {
	name := NewFinalName(time.Unix(1700000000, 0))
	assert.True(t, IsFinalName(name))
	assert.Regexp(t, `^recording_1700000000_[0-9a-f-]{36}\.m4a$`, name)
}
