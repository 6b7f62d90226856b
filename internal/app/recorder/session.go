package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"echonote/internal/app/blob"
	apperrors "echonote/internal/app/errors"
)

// State of a recording session. A session walks
// Idle -> Capturing -> Stopped -> {Committed | Discarded} exactly once; a new
// attempt needs a new session instance with a fresh session id.
type State string

const (
	StateIdle      State = "IDLE"
	StateCapturing State = "CAPTURING"
	StateStopped   State = "STOPPED"
	StateCommitted State = "COMMITTED"
	StateDiscarded State = "DISCARDED"
)

// Recording is the outcome of a stopped session: the finalized temporary
// asset plus the measurements the pipeline needs to commit it.
type Recording struct {
	SessionID string
	TempPath  string
	CreatedAt time.Time
	Duration  float64
}

// Session governs one capture attempt.
type Session struct {
	id     string
	device CaptureDevice
	blobs  *blob.Store
	logger *zap.Logger

	mu        sync.Mutex
	state     State
	tempPath  string
	startedAt time.Time
	recording *Recording
}

// NewSession mints a fresh session id; the temporary asset is namespaced by
// it so overlapping attempts cannot collide.
func NewSession(device CaptureDevice, blobs *blob.Store, logger *zap.Logger) *Session {
	return &Session{
		id:     uuid.NewString(),
		device: device,
		blobs:  blobs,
		logger: logger,
		state:  StateIdle,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin acquires the capture device and starts writing the temporary asset.
// On device failure the session stays Idle and nothing is written.
func (s *Session) Begin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return apperrors.ErrSessionConsumed
	}

	tempPath, err := s.blobs.OpenTemp(s.id)
	if err != nil {
		return apperrors.WrapSentinel(apperrors.ErrDeviceUnavailable, err)
	}

	if err := s.device.Start(ctx, tempPath); err != nil {
		return err
	}

	s.tempPath = tempPath
	s.startedAt = time.Now()
	s.state = StateCapturing

	s.logger.Info("recording started", zap.String("session_id", s.id))
	return nil
}

// Stop finalizes the temporary asset and returns its location and measured
// duration. Stopping an Idle session is a no-op returning no recording.
func (s *Session) Stop() (*Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle:
		return nil, nil
	case StateCapturing:
	default:
		return nil, apperrors.ErrSessionConsumed
	}

	duration, err := s.device.Stop()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to stop capture")
	}

	s.state = StateStopped
	s.recording = &Recording{
		SessionID: s.id,
		TempPath:  s.tempPath,
		CreatedAt: s.startedAt,
		Duration:  duration,
	}

	s.logger.Info("recording stopped",
		zap.String("session_id", s.id),
		zap.Float64("duration_sec", duration))
	return s.recording, nil
}

// Discard deletes the temporary asset without committing it.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped {
		return apperrors.Newf("cannot discard from state %s", s.state)
	}

	if err := s.blobs.RemoveTemp(s.tempPath); err != nil {
		return apperrors.Wrap(err, "failed to remove temp asset")
	}

	s.state = StateDiscarded
	s.logger.Info("recording discarded", zap.String("session_id", s.id))
	return nil
}

// MarkCommitted is called by the pipeline once the recording has been handed
// over; the session owns the temp asset no longer.
func (s *Session) MarkCommitted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped {
		return apperrors.Newf("cannot commit from state %s", s.state)
	}
	s.state = StateCommitted
	return nil
}
