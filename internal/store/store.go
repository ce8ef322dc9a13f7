// Package store is the entity repository: patients, doctors, health data,
// records, notes and doctor-patient edges. Uniqueness lives in the schema;
// callers see ErrDuplicate when a constraint rejects a write.
package store

import (
	"context"
	"errors"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate")
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

// Page selects a window of an ordered list.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps p to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type PatientRepository interface {
	CreatePatient(ctx context.Context, p *models.Patient) error
	FindPatient(ctx context.Context, id string) (*models.Patient, error)
	FindPatientByPhone(ctx context.Context, phone string) (*models.Patient, error)
	UpdatePatient(ctx context.Context, id string, cols map[string]any) (*models.Patient, error)
	// DeletePatient removes the patient with its health data, records,
	// notes and doctor edges.
	DeletePatient(ctx context.Context, id string) (*models.Patient, error)
}

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, d *models.Doctor) error
	FindDoctor(ctx context.Context, id string) (*models.Doctor, error)
	FindDoctorByCode(ctx context.Context, code string) (*models.Doctor, error)
	FindDoctorByPhone(ctx context.Context, phone string) (*models.Doctor, error)
	DoctorCodeExists(ctx context.Context, code string) (bool, error)
	DeleteDoctor(ctx context.Context, id string) (*models.Doctor, error)
}

// HealthDataFilter selects health data for listing. Global selects the
// ownerless catalog and ignores PatientID.
type HealthDataFilter struct {
	PatientID   string
	Global      bool
	TrackedOnly bool
}

type HealthDataRepository interface {
	CreateHealthData(ctx context.Context, h *models.HealthData) error
	FindHealthData(ctx context.Context, id string) (*models.HealthData, error)
	FindHealthDataByName(ctx context.Context, patientID, name string) (*models.HealthData, error)
	UpdateHealthData(ctx context.Context, id string, cols map[string]any) (*models.HealthData, error)
	// DeleteOwnedHealthData deletes a personalized definition and its
	// records. Global definitions yield ErrNotFound.
	DeleteOwnedHealthData(ctx context.Context, id string) (*models.HealthData, error)
	ListHealthData(ctx context.Context, f HealthDataFilter) ([]models.HealthData, error)
}

type RecordRepository interface {
	CreateRecord(ctx context.Context, r *models.HealthDataRecord) error
	FindRecord(ctx context.Context, id string) (*models.HealthDataRecord, error)
	// ListRecords returns a page of the history, oldest first, and the total count.
	ListRecords(ctx context.Context, patientID, healthDataID string, page Page) ([]models.HealthDataRecord, int64, error)
}

type NoteRepository interface {
	CreateNote(ctx context.Context, n *models.Note) error
	FindNote(ctx context.Context, id string) (*models.Note, error)
	ListNotes(ctx context.Context, patientID string) ([]models.Note, error)
	DeleteNote(ctx context.Context, id string) (*models.Note, error)
}

type RelationshipRepository interface {
	// Connect links the pair; linking an existing pair is a no-op.
	// Either side missing yields ErrNotFound.
	Connect(ctx context.Context, doctorID, patientID string) error
	Disconnect(ctx context.Context, doctorID, patientID string) error
	DoctorsOf(ctx context.Context, patientID string) ([]models.Doctor, error)
	PatientsOf(ctx context.Context, doctorID string) ([]models.Patient, error)
}

// Store is every repository in one.
type Store interface {
	PatientRepository
	DoctorRepository
	HealthDataRepository
	RecordRepository
	NoteRepository
	RelationshipRepository
}
