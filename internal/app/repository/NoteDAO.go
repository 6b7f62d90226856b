package repository

import (
	"echonote/internal/app/model"
)

// NoteDAO is the metadata store for voice notes. Every write persists before
// returning; the pipeline relies on Insert being durable before asset
// promotion starts. Implementations serialize concurrent writers so a rename
// racing a transcript arrival cannot lose either update.
type NoteDAO interface {
	Close() error

	Insert(note model.VoiceNote) error

	// Rename changes the display title.
	Rename(id, newTitle string) error

	// UpdateTranscript stores the transcription result.
	UpdateTranscript(id, transcript string) error

	// Delete removes the record, returning errors.ErrNotFound when it is
	// already absent; callers treat that as already satisfied.
	Delete(id string) error

	GetByID(id string) (model.VoiceNote, error)

	// ListAll returns a finite snapshot sorted by creation time, newest
	// first.
	ListAll() ([]model.VoiceNote, error)
}
