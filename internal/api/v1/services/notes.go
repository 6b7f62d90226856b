package services

import (
	"github.com/samber/lo"

	"echonote/internal/api/v1/dto"
	"echonote/internal/app/model"
	"echonote/internal/app/repository"
)

// NoteDeleter removes a note together with its audio asset. The pipeline
// coordinator satisfies it.
type NoteDeleter interface {
	DeleteNote(id string) error
}

// NoteService exposes the stored notes to the HTTP layer.
type NoteService struct {
	notes   repository.NoteDAO
	deleter NoteDeleter
}

func NewNoteService(notes repository.NoteDAO, deleter NoteDeleter) *NoteService {
	return &NoteService{notes: notes, deleter: deleter}
}

// List returns all notes, newest first.
func (s *NoteService) List() (dto.ListNotesResponse, error) {
	notes, err := s.notes.ListAll()
	if err != nil {
		return dto.ListNotesResponse{}, err
	}

	responses := lo.Map(notes, func(n model.VoiceNote, _ int) dto.NoteResponse {
		return toResponse(n)
	})

	return dto.ListNotesResponse{Notes: responses, Total: len(responses)}, nil
}

// Get returns a single note by id.
func (s *NoteService) Get(id string) (dto.NoteResponse, error) {
	note, err := s.notes.GetByID(id)
	if err != nil {
		return dto.NoteResponse{}, err
	}
	return toResponse(note), nil
}

// Rename updates the note's title and returns the updated note.
func (s *NoteService) Rename(id, title string) (dto.NoteResponse, error) {
	if err := s.notes.Rename(id, title); err != nil {
		return dto.NoteResponse{}, err
	}
	return s.Get(id)
}

// Delete removes the note and its asset.
func (s *NoteService) Delete(id string) error {
	return s.deleter.DeleteNote(id)
}

func toResponse(n model.VoiceNote) dto.NoteResponse {
	return dto.NoteResponse{
		ID:            n.ID,
		Title:         n.Title,
		Filename:      n.Filename,
		CreatedAt:     n.CreatedAt,
		Duration:      n.Duration,
		Transcript:    n.Transcript,
		HasTranscript: n.HasTranscript(),
	}
}
