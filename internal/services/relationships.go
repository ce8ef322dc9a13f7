package services

import (
	"context"
	"strings"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/enrollment"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
)

type relationshipStore interface {
	store.RelationshipRepository
	FindDoctor(ctx context.Context, id string) (*models.Doctor, error)
	FindDoctorByCode(ctx context.Context, code string) (*models.Doctor, error)
}

// Link is the body of POST /doctorPatientRelationship.
type Link struct {
	DoctorCode string `json:"doctorCode"`
	PatientID  string `json:"patientId"`
}

// Unlink is the body of DELETE /doctorPatientRelationship.
type Unlink struct {
	DoctorID  string `json:"doctorId"`
	PatientID string `json:"patientId"`
}

// Relationships links patients to doctors.
type Relationships struct {
	store relationshipStore
}

func NewRelationships(s relationshipStore) *Relationships { return &Relationships{store: s} }

// LinkByCode resolves the doctor by enrollment code and links the patient.
// An unknown or malformed code is NotFound; linking twice keeps a single edge.
func (s *Relationships) LinkByCode(ctx context.Context, _ string, in Link) (*models.Doctor, error) {
	code := strings.ToUpper(strings.TrimSpace(in.DoctorCode))
	if !enrollment.Valid(code) {
		return nil, apperr.NotFound(MsgDoctorNotFound)
	}
	d, err := s.store.FindDoctorByCode(ctx, code)
	if err != nil {
		return nil, fail(err, MsgDoctorNotFound, "")
	}
	if err := s.store.Connect(ctx, d.ID, in.PatientID); err != nil {
		return nil, fail(err, MsgPatientNotFound, "")
	}
	return d, nil
}

// Unlink removes the edge. Unknown doctors are NotFound; a missing edge is not.
func (s *Relationships) Unlink(ctx context.Context, _ string, in Unlink) (*models.Doctor, error) {
	if in.DoctorID == "" {
		return nil, apperr.MissingID()
	}
	d, err := s.store.FindDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, fail(err, MsgDoctorNotFound, "")
	}
	if err := s.store.Disconnect(ctx, d.ID, in.PatientID); err != nil {
		return nil, apperr.Internal(err)
	}
	return d, nil
}

func (s *Relationships) DoctorsOf(ctx context.Context, _ string, patientID string) ([]models.Doctor, error) {
	out, err := s.store.DoctorsOf(ctx, patientID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Relationships) PatientsOf(ctx context.Context, _ string, doctorID string) ([]models.Patient, error) {
	out, err := s.store.PatientsOf(ctx, doctorID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
