package player

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"echonote/internal/app/blob"
	apperrors "echonote/internal/app/errors"
)

// progressInterval is how often progress is recomputed while playing.
const progressInterval = 100 * time.Millisecond

// Session plays one permanent asset at a time. Every Start loads the asset
// fresh from storage, so bytes promoted after a previous playback are never
// served stale.
type Session struct {
	blobs  *blob.Store
	device Device
	logger *zap.Logger

	mu       sync.Mutex
	active   bool
	playing  bool
	duration float64
	elapsed  time.Duration
	progress float64
	cancel   chan struct{}
}

func NewSession(blobs *blob.Store, device Device, logger *zap.Logger) *Session {
	return &Session{blobs: blobs, device: device, logger: logger}
}

// Start stops any current playback, loads the asset and begins playing.
func (s *Session) Start(finalName string) error {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.blobs.Exists(finalName) {
		return apperrors.WrapSentinel(apperrors.ErrAssetNotFound, apperrors.Newf("asset %s", finalName))
	}

	duration, err := s.device.Open(s.blobs.Path(finalName))
	if err != nil {
		return apperrors.Wrap(err, "failed to load asset")
	}
	if err := s.device.Play(); err != nil {
		return apperrors.Wrap(err, "failed to start playback")
	}

	s.active = true
	s.playing = true
	s.duration = duration
	s.elapsed = 0
	s.progress = 0
	s.cancel = make(chan struct{})

	go s.track(s.cancel, s.device.Done())

	s.logger.Info("playback started", zap.String("asset", finalName), zap.Float64("duration_sec", duration))
	return nil
}

// track recomputes progress at a fixed interval until playback stops or
// completes naturally.
func (s *Session) track(cancel <-chan struct{}, done <-chan struct{}) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-done:
			s.finish()
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.playing && s.duration > 0 {
				s.elapsed += progressInterval
				s.progress = s.elapsed.Seconds() / s.duration
				if s.progress > 1 {
					s.progress = 1
				}
			}
			s.mu.Unlock()
		}
	}
}

// finish handles natural completion: playback ends without an explicit Stop.
func (s *Session) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.active = false
	s.playing = false
	s.progress = 0
	s.elapsed = 0
	_ = s.device.Close()
	s.logger.Info("playback completed")
}

// Toggle pauses a playing session or resumes a paused one.
func (s *Session) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	if s.playing {
		if err := s.device.Pause(); err != nil {
			return apperrors.Wrap(err, "failed to pause")
		}
		s.playing = false
	} else {
		if err := s.device.Play(); err != nil {
			return apperrors.Wrap(err, "failed to resume")
		}
		s.playing = true
	}
	return nil
}

// Stop releases device resources unconditionally; stopping an inactive
// session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		select {
		case <-s.cancel:
		default:
			close(s.cancel)
		}
		s.cancel = nil
	}
	_ = s.device.Close()
	s.active = false
	s.playing = false
	s.progress = 0
	s.elapsed = 0
}

// Playing reports whether audio is currently playing.
func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Progress is the playback position as a fraction in [0, 1].
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}
