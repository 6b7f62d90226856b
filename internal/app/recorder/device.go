package recorder

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"time"

	"echonote/internal/app/audio"
	apperrors "echonote/internal/app/errors"
)

// CaptureDevice writes an encoded audio stream to a destination path at the
// fixed capture profile. One device instance serves one capture attempt.
type CaptureDevice interface {
	// Start acquires the device and begins writing to dest.
	Start(ctx context.Context, dest string) error
	// Stop finalizes the stream and returns the captured duration in seconds.
	Stop() (float64, error)
}

// FFmpegDevice captures from the system microphone by driving an ffmpeg
// process. Stopping sends an interrupt so ffmpeg can finalize the container
// header before exiting.
type FFmpegDevice struct {
	inputFormat string
	inputDevice string

	cmd       *exec.Cmd
	dest      string
	startedAt time.Time
	stderr    bytes.Buffer
}

// NewFFmpegDevice uses the platform default input when format and device are
// empty.
func NewFFmpegDevice(inputFormat, inputDevice string) *FFmpegDevice {
	if inputFormat == "" {
		inputFormat = defaultInputFormat()
	}
	if inputDevice == "" {
		inputDevice = "default"
	}
	return &FFmpegDevice{inputFormat: inputFormat, inputDevice: inputDevice}
}

func defaultInputFormat() string {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation"
	default:
		return "alsa"
	}
}

func (d *FFmpegDevice) Start(ctx context.Context, dest string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", audio.CaptureArgs(d.inputFormat, d.inputDevice, dest)...)
	cmd.Stderr = &d.stderr

	if err := cmd.Start(); err != nil {
		return apperrors.WrapSentinel(apperrors.ErrDeviceUnavailable, err)
	}

	d.cmd = cmd
	d.dest = dest
	d.startedAt = time.Now()
	return nil
}

func (d *FFmpegDevice) Stop() (float64, error) {
	if d.cmd == nil || d.cmd.Process == nil {
		return 0, apperrors.New("capture device not started")
	}

	// An interrupt lets ffmpeg flush and finalize the output file.
	if err := d.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = d.cmd.Process.Kill()
	}
	_ = d.cmd.Wait()

	elapsed := time.Since(d.startedAt).Seconds()
	d.cmd = nil

	// Prefer the container's own duration; fall back to wall clock when
	// ffprobe cannot read the file.
	if duration, err := audio.Duration(d.dest); err == nil {
		return duration, nil
	}
	return elapsed, nil
}
