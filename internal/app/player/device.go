package player

import (
	"os/exec"
	"sync"
	"syscall"

	"echonote/internal/app/audio"
	apperrors "echonote/internal/app/errors"
)

// Device is the playback half of the audio stack. Open loads the asset fresh
// and reports its duration; Done is closed on natural completion.
type Device interface {
	Open(path string) (float64, error)
	Play() error
	Pause() error
	Close() error
	Done() <-chan struct{}
}

// FFplayDevice plays assets through an ffplay process. Pause and resume map
// to stop/continue signals on the process.
type FFplayDevice struct {
	mu   sync.Mutex
	path string
	cmd  *exec.Cmd
	done chan struct{}
}

func NewFFplayDevice() *FFplayDevice {
	return &FFplayDevice{}
}

func (d *FFplayDevice) Open(path string) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	duration, err := audio.Duration(path)
	if err != nil {
		return 0, apperrors.WrapSentinel(apperrors.ErrDeviceUnavailable, err)
	}

	d.path = path
	d.cmd = nil
	d.done = make(chan struct{})
	return duration, nil
}

func (d *FFplayDevice) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cmd != nil && d.cmd.Process != nil {
		// Resuming a paused process.
		return d.cmd.Process.Signal(syscall.SIGCONT)
	}

	cmd := exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", d.path)
	if err := cmd.Start(); err != nil {
		return apperrors.WrapSentinel(apperrors.ErrDeviceUnavailable, err)
	}
	d.cmd = cmd

	done := d.done
	go func() {
		_ = cmd.Wait()
		select {
		case <-done:
		default:
			close(done)
		}
	}()
	return nil
}

func (d *FFplayDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cmd == nil || d.cmd.Process == nil {
		return nil
	}
	return d.cmd.Process.Signal(syscall.SIGSTOP)
}

func (d *FFplayDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cmd != nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Signal(syscall.SIGCONT)
		_ = d.cmd.Process.Kill()
	}
	d.cmd = nil
	return nil
}

func (d *FFplayDevice) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}
