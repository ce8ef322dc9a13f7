package handlers

import (
	"net/http"

	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/services"
)

type HealthDataHandler struct {
	svc *services.HealthDataService
}

func NewHealthDataHandler(svc *services.HealthDataService) *HealthDataHandler {
	return &HealthDataHandler{svc: svc}
}

// Catalog lists the global definitions.
func (h *HealthDataHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, noInput, h.svc.Catalog)
}

func (h *HealthDataHandler) Personalized(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.svc.Personalized)
}

func (h *HealthDataHandler) Tracked(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.svc.Tracked)
}

func (h *HealthDataHandler) Create(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusCreated, ownedBody(func(in *services.NewHealthData) *string { return &in.PatientID }), h.svc.Create)
}

func (h *HealthDataHandler) Update(w http.ResponseWriter, r *http.Request) {
	decode := func(r *http.Request) (services.HealthDataUpdate, error) {
		changes, err := jsonBody[models.HealthDataChanges](r)
		return services.HealthDataUpdate{ID: r.PathValue("id"), Changes: changes}, err
	}
	serve(w, r, http.StatusOK, decode, h.svc.Update)
}

func (h *HealthDataHandler) Delete(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.svc.Delete)
}

func (h *HealthDataHandler) Track(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.svc.Track)
}

func (h *HealthDataHandler) Untrack(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.svc.Untrack)
}
