package model

import (
	"time"
)

// VoiceNote is one persisted recording: the metadata row plus the name of the
// permanent audio asset that backs it. Filename, CreatedAt and Duration are
// fixed at creation; Title changes on rename and Transcript is set by the
// transcription step once the result arrives.
type VoiceNote struct {
	ID         string
	Filename   string
	Title      string
	CreatedAt  time.Time
	Duration   float64 // seconds, measured when recording stopped
	Transcript *string // nil until transcription delivers text, possibly forever
}

// HasTranscript reports whether a non-empty transcript has been stored.
func (n VoiceNote) HasTranscript() bool {
	return n.Transcript != nil && *n.Transcript != ""
}

// DefaultTitle builds the display title used when the caller supplies none.
func DefaultTitle(createdAt time.Time) string {
	return "Recording " + createdAt.Format("Jan 2, 2006 at 3:04 PM")
}
