package handlers

import (
	"net/http"

	"github.com/sintocheck/sintocheck-api/internal/services"
)

// RelationshipHandler serves the doctor-patient link routes.
type RelationshipHandler struct {
	rel *services.Relationships
}

func NewRelationshipHandler(rel *services.Relationships) *RelationshipHandler {
	return &RelationshipHandler{rel: rel}
}

func (h *RelationshipHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("patientId"), h.rel.DoctorsOf)
}

func (h *RelationshipHandler) Link(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, ownedBody(func(in *services.Link) *string { return &in.PatientID }), h.rel.LinkByCode)
}

func (h *RelationshipHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, ownedBody(func(in *services.Unlink) *string { return &in.PatientID }), h.rel.Unlink)
}
