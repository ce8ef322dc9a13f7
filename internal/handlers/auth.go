package handlers

import (
	"net/http"

	"github.com/sintocheck/sintocheck-api/internal/services"
)

// AuthHandler serves the public signup and login routes.
type AuthHandler struct {
	creds *services.Credentials
}

func NewAuthHandler(creds *services.Credentials) *AuthHandler {
	return &AuthHandler{creds: creds}
}

func (h *AuthHandler) SignupPatient(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, jsonBody[services.PatientSignup], h.creds.RegisterPatient)
}

func (h *AuthHandler) SignupDoctor(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, jsonBody[services.DoctorSignup], h.creds.RegisterDoctor)
}

func (h *AuthHandler) LoginPatient(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, jsonBody[services.Login], h.creds.LoginPatient)
}
