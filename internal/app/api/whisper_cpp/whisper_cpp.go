package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalTranscriber implements local transcription by invoking a whisper.cpp
// binary.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(binaryPath, modelPath string) *LocalTranscriber {
	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
	}
}

// Transcript runs the whisper.cpp binary against the input file and reads the
// text it produces. The locale hint is reduced to its language part; an
// unsupported language makes the binary fall back to auto-detection.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath, language string) (string, error) {
	outputBase := filepath.Join(os.TempDir(), "echonote_whisper_"+uuid.NewString())
	outputFile := outputBase + ".txt"
	defer os.Remove(outputFile)

	args := []string{
		"-m", lt.modelPath,
		"-l", languageArg(language),
		"-otxt",
		"-f", inputFilePath,
		"-of", outputBase,
	}

	cmd := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper.cpp failed: %v, stderr: %s", err, stderr.String())
	}

	text, err := os.ReadFile(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read whisper.cpp output: %w", err)
	}

	return strings.TrimSpace(string(text)), nil
}

func languageArg(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "auto"
	}
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}
