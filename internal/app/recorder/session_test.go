package recorder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"echonote/internal/app/blob"
	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/testutil"
)

func newTestSession(t *testing.T, device CaptureDevice) (*Session, *blob.Store) {
	t.Helper()
	store, err := blob.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return NewSession(device, store, zap.NewNop()), store
}

func TestSessionLifecycle(t *testing.T) {
	device := &testutil.FakeCaptureDevice{Duration: 5.0}
	session, _ := newTestSession(t, device)

	assert.Equal(t, StateIdle, session.State())
	require.NotEmpty(t, session.ID())

	require.NoError(t, session.Begin(context.Background()))
	assert.Equal(t, StateCapturing, session.State())

	rec, err := session.Stop()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, StateStopped, session.State())
	assert.Equal(t, 5.0, rec.Duration)
	assert.Equal(t, session.ID(), rec.SessionID)
	assert.FileExists(t, rec.TempPath)

	require.NoError(t, session.MarkCommitted())
	assert.Equal(t, StateCommitted, session.State())
}

func TestStopWhileIdleIsNoOp(t *testing.T) {
	session, _ := newTestSession(t, &testutil.FakeCaptureDevice{})

	rec, err := session.Stop()
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, StateIdle, session.State())
}

func TestBeginDeviceUnavailableStaysIdle(t *testing.T) {
	device := &testutil.FakeCaptureDevice{
		StartErr: apperrors.ErrDeviceUnavailable,
	}
	session, _ := newTestSession(t, device)

	err := session.Begin(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDeviceUnavailable)
	assert.Equal(t, StateIdle, session.State())
}

func TestSessionIsSingleUse(t *testing.T) {
	session, _ := newTestSession(t, &testutil.FakeCaptureDevice{Duration: 1.0})

	require.NoError(t, session.Begin(context.Background()))
	_, err := session.Stop()
	require.NoError(t, err)

	err = session.Begin(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSessionConsumed)
}

func TestDiscardRemovesTempAsset(t *testing.T) {
	session, _ := newTestSession(t, &testutil.FakeCaptureDevice{Duration: 2.5})

	require.NoError(t, session.Begin(context.Background()))
	rec, err := session.Stop()
	require.NoError(t, err)

	require.NoError(t, session.Discard())
	assert.Equal(t, StateDiscarded, session.State())
	assert.NoFileExists(t, rec.TempPath)

	// Discarded sessions cannot be committed.
	assert.Error(t, session.MarkCommitted())
}

func TestDiscardRequiresStoppedState(t *testing.T) {
	session, _ := newTestSession(t, &testutil.FakeCaptureDevice{})
	assert.Error(t, session.Discard())
}

func TestFreshSessionIDsDoNotCollide(t *testing.T) {
	a, _ := newTestSession(t, &testutil.FakeCaptureDevice{})
	b, _ := newTestSession(t, &testutil.FakeCaptureDevice{})
	assert.NotEqual(t, a.ID(), b.ID())
}
