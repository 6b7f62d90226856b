package dto

import "time"

// NoteResponse is the wire representation of a stored voice note.
type NoteResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Filename      string    `json:"filename"`
	CreatedAt     time.Time `json:"created_at"`
	Duration      float64   `json:"duration"`
	Transcript    *string   `json:"transcript,omitempty"`
	HasTranscript bool      `json:"has_transcript"`
}

// ListNotesResponse wraps a collection of notes.
type ListNotesResponse struct {
	Notes []NoteResponse `json:"notes"`
	Total int            `json:"total"`
}

// RenameNoteRequest changes a note's display title.
type RenameNoteRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}
