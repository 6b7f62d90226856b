package pipeline

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/model"
	"echonote/internal/app/testutil"
)

func TestReconcileReapsOrphanRows(t *testing.T) {
	f := newFixture(t, &testutil.MockTranscriber{})

	// A row whose asset never arrived (crash between insert and promotion).
	orphan := model.VoiceNote{
		ID:        "orphan",
		Filename:  "recording_1_orphan.m4a",
		Title:     "Orphan",
		CreatedAt: time.Now().UTC(),
		Duration:  1.0,
	}
	require.NoError(t, f.notes.Insert(orphan))

	// A healthy row with its asset in place.
	healthy := model.VoiceNote{
		ID:        "healthy",
		Filename:  "recording_2_healthy.m4a",
		Title:     "Healthy",
		CreatedAt: time.Now().UTC().Add(time.Second),
		Duration:  2.0,
	}
	require.NoError(t, f.notes.Insert(healthy))
	require.NoError(t, os.WriteFile(f.blobs.Path(healthy.Filename), []byte("audio"), 0o644))

	report, err := f.coord.Reconcile(context.Background(), ReconcileOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.NotesSeen)
	assert.Equal(t, 1, report.OrphanRowsReaped)

	_, err = f.notes.GetByID("orphan")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.notes.GetByID("healthy")
	assert.NoError(t, err)
}

func TestReconcileSweepsStaleTemps(t *testing.T) {
	f := newFixture(t, &testutil.MockTranscriber{})

	stale := f.blobs.TempPath("dead-session")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, past, past))

	fresh := f.blobs.TempPath("live-session")
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))

	report, err := f.coord.Reconcile(context.Background(), ReconcileOptions{TempMaxAge: time.Hour})
	require.NoError(t, err)

	assert.Equal(t, 1, report.StaleTempsRemoved)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}

func TestReconcileRetryWithoutTranscriberRefused(t *testing.T) {
	f := newFixture(t, &testutil.MockTranscriber{})
	coord := NewCoordinator(f.notes, f.blobs, nil, nil, zap.NewNop())

	_, err := coord.Reconcile(context.Background(), ReconcileOptions{RetryTranscripts: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcription provider")

	// The plain sweep still works without one.
	_, err = coord.Reconcile(context.Background(), ReconcileOptions{})
	require.NoError(t, err)
}

func TestReconcileRetriesTranscripts(t *testing.T) {
	f := newFixture(t, &testutil.MockTranscriber{Text: "recovered text"})

	note := model.VoiceNote{
		ID:        "quiet",
		Filename:  "recording_3_quiet.m4a",
		Title:     "Quiet",
		CreatedAt: time.Now().UTC(),
		Duration:  3.0,
	}
	require.NoError(t, f.notes.Insert(note))
	require.NoError(t, os.WriteFile(f.blobs.Path(note.Filename), []byte("audio"), 0o644))

	// Without the flag nothing is retried.
	report, err := f.coord.Reconcile(context.Background(), ReconcileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TranscriptsRecovered)
	assert.Equal(t, 0, f.transcriber.Calls())

	report, err = f.coord.Reconcile(context.Background(), ReconcileOptions{RetryTranscripts: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TranscriptsRecovered)

	stored, err := f.notes.GetByID("quiet")
	require.NoError(t, err)
	require.NotNil(t, stored.Transcript)
	assert.Equal(t, "recovered text", *stored.Transcript)

	// A note that already has a transcript is left alone.
	report, err = f.coord.Reconcile(context.Background(), ReconcileOptions{RetryTranscripts: true})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TranscriptsRecovered)
}
