package services

import (
	"context"
	"errors"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
	"github.com/sintocheck/sintocheck-api/validation"
)

// HealthDataService manages metric definitions.
type HealthDataService struct {
	store store.HealthDataRepository
}

func NewHealthDataService(s store.HealthDataRepository) *HealthDataService {
	return &HealthDataService{store: s}
}

// NewHealthData is the body of POST /personalizedHealthData.
type NewHealthData struct {
	Name         string   `json:"name"`
	Quantitative bool     `json:"quantitative"`
	PatientID    string   `json:"patientId"`
	RangeMin     *float64 `json:"rangeMin"`
	RangeMax     *float64 `json:"rangeMax"`
	Unit         *string  `json:"unit"`
}

// HealthDataUpdate edits definition ID.
type HealthDataUpdate struct {
	ID      string
	Changes models.HealthDataChanges
}

// Create adds a personalized definition. A name the patient already uses is
// a Conflict, whether caught here or by the unique index.
func (s *HealthDataService) Create(ctx context.Context, _ string, in NewHealthData) (*models.HealthData, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 255, v)
	validation.Ordered("rangeMin", in.RangeMin, in.RangeMax, v)
	if !v.Empty() {
		return nil, apperr.Invalid(v)
	}
	if err := s.ensureNameFree(ctx, in.PatientID, in.Name, ""); err != nil {
		return nil, err
	}
	owner := in.PatientID
	h := &models.HealthData{
		Name:         in.Name,
		Quantitative: in.Quantitative,
		RangeMin:     in.RangeMin,
		RangeMax:     in.RangeMax,
		Unit:         in.Unit,
		Tracked:      true,
		PatientID:    &owner,
	}
	if err := s.store.CreateHealthData(ctx, h); err != nil {
		return nil, fail(err, "", MsgHealthDataExists)
	}
	return h, nil
}

// Update applies field edits. The duplicate-name check runs against the
// principal's own definitions, skipping the row being edited.
func (s *HealthDataService) Update(ctx context.Context, principal string, in HealthDataUpdate) (*models.HealthData, error) {
	current, err := s.store.FindHealthData(ctx, in.ID)
	if err != nil {
		return nil, fail(err, MsgHealthDataNotFound, "")
	}
	next := in.Changes.Apply(*current)

	v := validation.Violations{}
	validation.RequiredPtr("name", in.Changes.Name, v)
	validation.Ordered("rangeMin", next.RangeMin, next.RangeMax, v)
	if !v.Empty() {
		return nil, apperr.Invalid(v)
	}
	if in.Changes.Name != nil {
		if err := s.ensureNameFree(ctx, principal, *in.Changes.Name, in.ID); err != nil {
			return nil, err
		}
	}
	h, err := s.store.UpdateHealthData(ctx, in.ID, in.Changes.Columns())
	if err != nil {
		return nil, fail(err, MsgHealthDataNotFound, MsgHealthDataExists)
	}
	return h, nil
}

func (s *HealthDataService) ensureNameFree(ctx context.Context, patientID, name, except string) error {
	existing, err := s.store.FindHealthDataByName(ctx, patientID, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return apperr.Internal(err)
	case existing.ID == except:
		return nil
	default:
		return apperr.Conflict(MsgHealthDataExists)
	}
}

// Delete removes a personalized definition and its records. Global
// definitions are rejected.
func (s *HealthDataService) Delete(ctx context.Context, _ string, id string) (*models.HealthData, error) {
	h, err := s.store.DeleteOwnedHealthData(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		if existing, ferr := s.store.FindHealthData(ctx, id); ferr == nil && existing.IsGlobal() {
			return nil, apperr.BadRequest(MsgGlobalHealthData)
		}
		return nil, apperr.NotFound(MsgHealthDataNotFound)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return h, nil
}

// Track sets the tracked flag. Repeating it is not an error.
func (s *HealthDataService) Track(ctx context.Context, _ string, id string) (*models.HealthData, error) {
	return s.setTracked(ctx, id, true)
}

// Untrack clears the tracked flag. Repeating it is not an error.
func (s *HealthDataService) Untrack(ctx context.Context, _ string, id string) (*models.HealthData, error) {
	return s.setTracked(ctx, id, false)
}

func (s *HealthDataService) setTracked(ctx context.Context, id string, tracked bool) (*models.HealthData, error) {
	h, err := s.store.UpdateHealthData(ctx, id, map[string]any{"tracked": tracked})
	if err != nil {
		return nil, fail(err, MsgHealthDataNotFound, "")
	}
	return h, nil
}

// Catalog lists the global definitions.
func (s *HealthDataService) Catalog(ctx context.Context, _ string, _ struct{}) ([]models.HealthData, error) {
	return s.list(ctx, store.HealthDataFilter{Global: true})
}

// Personalized lists every definition patientID owns.
func (s *HealthDataService) Personalized(ctx context.Context, _ string, patientID string) ([]models.HealthData, error) {
	return s.list(ctx, store.HealthDataFilter{PatientID: patientID})
}

// Tracked lists the definitions patientID currently tracks.
func (s *HealthDataService) Tracked(ctx context.Context, _ string, patientID string) ([]models.HealthData, error) {
	return s.list(ctx, store.HealthDataFilter{PatientID: patientID, TrackedOnly: true})
}

func (s *HealthDataService) list(ctx context.Context, f store.HealthDataFilter) ([]models.HealthData, error) {
	out, err := s.store.ListHealthData(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if out == nil {
		out = []models.HealthData{}
	}
	return out, nil
}
