package services

import (
	"context"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
	"github.com/sintocheck/sintocheck-api/validation"
)

// NewNote is the body of POST /note.
type NewNote struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	PatientID string `json:"patientId"`
}

type Notes struct {
	store store.NoteRepository
}

func NewNotes(s store.NoteRepository) *Notes { return &Notes{store: s} }

func (s *Notes) List(ctx context.Context, _ string, patientID string) ([]models.Note, error) {
	out, err := s.store.ListNotes(ctx, patientID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Notes) Create(ctx context.Context, _ string, in NewNote) (*models.Note, error) {
	v := validation.Violations{}
	validation.Required("title", in.Title, v)
	validation.MaxLen("title", in.Title, 255, v)
	if !v.Empty() {
		return nil, apperr.Invalid(v)
	}
	n := &models.Note{Title: in.Title, Content: in.Content, PatientID: in.PatientID}
	if err := s.store.CreateNote(ctx, n); err != nil {
		return nil, apperr.Internal(err)
	}
	return n, nil
}

func (s *Notes) Delete(ctx context.Context, _ string, id string) (*models.Note, error) {
	n, err := s.store.DeleteNote(ctx, id)
	if err != nil {
		return nil, fail(err, MsgNoteNotFound, "")
	}
	return n, nil
}
