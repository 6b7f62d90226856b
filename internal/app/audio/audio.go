package audio

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Capture profile for every recording session: mono, 44.1kHz, AAC at 192kbps.
const (
	CaptureChannels   = 1
	CaptureSampleRate = 44100
	CaptureCodec      = "aac"
	CaptureBitrate    = "192k"

	// AssetExt is the container extension used for all assets.
	AssetExt = ".m4a"
)

// Duration returns the length of an audio file in seconds, via ffprobe.
func Duration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", filePath, err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable ffprobe duration %q: %w", strings.TrimSpace(string(output)), err)
	}
	return duration, nil
}

// CaptureArgs builds the ffmpeg arguments that record the fixed capture
// profile from the given input device to dest.
func CaptureArgs(inputFormat, inputDevice, dest string) []string {
	return []string{
		"-f", inputFormat,
		"-i", inputDevice,
		"-ac", strconv.Itoa(CaptureChannels),
		"-ar", strconv.Itoa(CaptureSampleRate),
		"-c:a", CaptureCodec,
		"-b:a", CaptureBitrate,
		"-y",
		dest,
	}
}
