// Package testutil provides fakes and in-memory doubles shared across the
// package tests. Everything here is deterministic; no audio hardware, no
// network.
package testutil

import (
	"context"
	"os"
	"sync"
	"time"
)

// FakeCaptureDevice satisfies recorder.CaptureDevice. It writes synthetic
// bytes to the destination on Start and reports a fixed duration on Stop.
type FakeCaptureDevice struct {
	// Duration reported by Stop, in seconds.
	Duration float64
	// StartErr, when set, makes Start fail without writing anything.
	StartErr error
	// Payload written to the destination; defaults to a small marker.
	Payload []byte

	mu      sync.Mutex
	dest    string
	started bool
}

func (d *FakeCaptureDevice) Start(_ context.Context, dest string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.StartErr != nil {
		return d.StartErr
	}
	payload := d.Payload
	if payload == nil {
		payload = []byte("synthetic-audio")
	}
	if err := os.WriteFile(dest, payload, 0o644); err != nil {
		return err
	}
	d.dest = dest
	d.started = true
	return nil
}

func (d *FakeCaptureDevice) Stop() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
	return d.Duration, nil
}

// FakePlaybackDevice satisfies player.Device with a controllable clock-less
// playback: tests trigger natural completion by calling Finish.
type FakePlaybackDevice struct {
	// OpenDuration returned by Open.
	OpenDuration float64
	// OpenErr, when set, makes Open fail.
	OpenErr error

	mu     sync.Mutex
	opened string
	done   chan struct{}
	Paused bool
	Closed bool
}

func (d *FakePlaybackDevice) Open(path string) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return 0, d.OpenErr
	}
	d.opened = path
	d.done = make(chan struct{})
	d.Closed = false
	return d.OpenDuration, nil
}

func (d *FakePlaybackDevice) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Paused = false
	return nil
}

func (d *FakePlaybackDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Paused = true
	return nil
}

func (d *FakePlaybackDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

func (d *FakePlaybackDevice) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Finish simulates natural completion of playback.
func (d *FakePlaybackDevice) Finish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	select {
	case <-d.done:
	default:
		close(d.done)
	}
}

// OpenedPath reports the last path passed to Open.
func (d *FakePlaybackDevice) OpenedPath() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened
}

// MockTranscriber satisfies api.Transcriber with a canned result.
type MockTranscriber struct {
	Text  string
	Err   error
	Delay time.Duration

	mu        sync.Mutex
	calls     int
	languages []string
}

func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath, language string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.languages = append(m.languages, language)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

func (m *MockTranscriber) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockTranscriber) Languages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.languages...)
}
