package services

import (
	"context"
	"errors"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/config"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
	"github.com/sintocheck/sintocheck-api/validation"
)

// Accounts serves profile reads, edits and deletions.
type Accounts struct {
	store          store.Store
	doctorDeletion string
}

func NewAccounts(s store.Store, doctorDeletion string) *Accounts {
	return &Accounts{store: s, doctorDeletion: doctorDeletion}
}

func (a *Accounts) GetPatient(ctx context.Context, _ string, id string) (*models.Patient, error) {
	p, err := a.store.FindPatient(ctx, id)
	if err != nil {
		return nil, fail(err, MsgPatientNotFound, "")
	}
	return p, nil
}

// PatientUpdate is a partial edit of patient ID.
type PatientUpdate struct {
	ID      string
	Changes models.PatientChanges
}

func (a *Accounts) UpdatePatient(ctx context.Context, _ string, in PatientUpdate) (*models.Patient, error) {
	v := validation.Violations{}
	validation.RequiredPtr("name", in.Changes.Name, v)
	validation.RequiredPtr("phone", in.Changes.Phone, v)
	validation.PositiveFloat("height", in.Changes.Height, v)
	validation.PositiveFloat("weight", in.Changes.Weight, v)
	if !v.Empty() {
		return nil, apperr.Invalid(v)
	}
	if in.Changes.Phone != nil {
		other, err := a.store.FindPatientByPhone(ctx, *in.Changes.Phone)
		if err == nil && other.ID != in.ID {
			return nil, apperr.Conflict(MsgPhoneRegistered)
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
	}
	p, err := a.store.UpdatePatient(ctx, in.ID, in.Changes.Columns())
	if err != nil {
		return nil, fail(err, MsgPatientNotFound, MsgPhoneRegistered)
	}
	return p, nil
}

// DeletePatient removes the patient and everything it owns.
func (a *Accounts) DeletePatient(ctx context.Context, _ string, id string) (*models.Patient, error) {
	p, err := a.store.DeletePatient(ctx, id)
	if err != nil {
		return nil, fail(err, MsgPatientNotFound, "")
	}
	return p, nil
}

// DeleteDoctor is governed by the doctor deletion policy.
func (a *Accounts) DeleteDoctor(ctx context.Context, _ string, id string) (*models.Doctor, error) {
	if a.doctorDeletion != config.DoctorDeletionOpen {
		return nil, apperr.Forbidden()
	}
	if id == "" {
		return nil, apperr.MissingID()
	}
	d, err := a.store.DeleteDoctor(ctx, id)
	if err != nil {
		return nil, fail(err, MsgDoctorNotFound, "")
	}
	return d, nil
}

// ImageRef points at a profile image already stored on the asset host.
type ImageRef struct {
	PatientID string `json:"patientId"`
	URL       string `json:"imageurl"`
	Filename  string `json:"imageFilename"`
}

// ImageURL is the body of GET /image/patient/{id}.
type ImageURL struct {
	URL string `json:"url"`
}

func (a *Accounts) SetImage(ctx context.Context, _ string, in ImageRef) (*models.Patient, error) {
	if in.URL == "" {
		return nil, apperr.BadRequest(MsgNoImage)
	}
	cols := map[string]any{"image_url": in.URL, "image_filename": in.Filename}
	p, err := a.store.UpdatePatient(ctx, in.PatientID, cols)
	if err != nil {
		return nil, fail(err, MsgPatientNotFound, "")
	}
	return p, nil
}

// GetImage returns nil when the patient has no image.
func (a *Accounts) GetImage(ctx context.Context, _ string, id string) (*ImageURL, error) {
	p, err := a.store.FindPatient(ctx, id)
	if err != nil {
		return nil, fail(err, MsgPatientNotFound, "")
	}
	if p.ImageURL == nil || *p.ImageURL == "" {
		return nil, nil
	}
	return &ImageURL{URL: *p.ImageURL}, nil
}
