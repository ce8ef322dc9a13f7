package handlers

import (
	"net/http"

	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/services"
)

// PatientHandler serves profile, image and doctor account routes.
type PatientHandler struct {
	accounts *services.Accounts
}

func NewPatientHandler(accounts *services.Accounts) *PatientHandler {
	return &PatientHandler{accounts: accounts}
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.accounts.GetPatient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	decode := func(r *http.Request) (services.PatientUpdate, error) {
		changes, err := jsonBody[models.PatientChanges](r)
		return services.PatientUpdate{ID: r.PathValue("id"), Changes: changes}, err
	}
	serve(w, r, http.StatusOK, decode, h.accounts.UpdatePatient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.accounts.DeletePatient)
}

func (h *PatientHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.accounts.DeleteDoctor)
}

func (h *PatientHandler) SetImage(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, ownedBody(func(in *services.ImageRef) *string { return &in.PatientID }), h.accounts.SetImage)
}

func (h *PatientHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.accounts.GetImage)
}
