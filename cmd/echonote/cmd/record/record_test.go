package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/model"
)

func TestOutcomeMessageWithTranscript(t *testing.T) {
	text := "hello world"
	note := model.VoiceNote{ID: "n1", CreatedAt: time.Now(), Transcript: &text}

	msg, err := outcomeMessage(note, nil, "")
	require.NoError(t, err)
	assert.Contains(t, msg, "hello world")
}

func TestOutcomeMessageWithoutTranscript(t *testing.T) {
	msg, err := outcomeMessage(model.VoiceNote{ID: "n1"}, nil, "")
	require.NoError(t, err)
	assert.Contains(t, msg, "No transcript available")
}

func TestOutcomeMessageRolledBackNote(t *testing.T) {
	// The reload coming back not-found means promotion failed and the
	// compensating delete removed the row.
	_, err := outcomeMessage(model.VoiceNote{}, apperrors.ErrNotFound, "/tmp/temp_recording_x.m4a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving the audio failed")
	assert.Contains(t, err.Error(), "/tmp/temp_recording_x.m4a")
	assert.NotContains(t, err.Error(), "disappeared")
}

func TestOutcomeMessageOtherError(t *testing.T) {
	_, err := outcomeMessage(model.VoiceNote{}, apperrors.New("db closed"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reload note")
}
