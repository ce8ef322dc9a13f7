package handlers

import (
	"net/http"

	"github.com/sintocheck/sintocheck-api/internal/services"
)

type NoteHandler struct {
	notes *services.Notes
}

func NewNoteHandler(notes *services.Notes) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("patientId"), h.notes.List)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, ownedBody(func(in *services.NewNote) *string { return &in.PatientID }), h.notes.Create)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.notes.Delete)
}
