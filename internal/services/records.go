package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
	"github.com/sintocheck/sintocheck-api/validation"
)

// Measurement is a record value. Clients send numbers or text; both are
// stored as text.
type Measurement string

func (m *Measurement) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Measurement(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("value must be a number or a string")
	}
	*m = Measurement(n.String())
	return nil
}

// NewRecord is the body of POST /healthDataRecord.
type NewRecord struct {
	PatientID    string      `json:"patientId"`
	HealthDataID string      `json:"healthDataId"`
	Value        Measurement `json:"value"`
	Note         *string     `json:"note"`
}

// RecordQuery selects a page of one metric's history.
type RecordQuery struct {
	PatientID    string
	HealthDataID string
	Page         store.Page
}

// RecordPage is one page of history plus the total count.
type RecordPage struct {
	Items  []models.HealthDataRecord `json:"items"`
	Total  int64                     `json:"total"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

type recordStore interface {
	store.RecordRepository
	FindHealthData(ctx context.Context, id string) (*models.HealthData, error)
}

// Records appends measurements and reads history.
type Records struct {
	store recordStore
}

func NewRecords(s recordStore) *Records { return &Records{store: s} }

// Create appends a record. The definition must exist and belong to the
// record's patient.
func (s *Records) Create(ctx context.Context, _ string, in NewRecord) (*models.HealthDataRecord, error) {
	v := validation.Violations{}
	validation.Required("healthDataId", in.HealthDataID, v)
	validation.Required("value", string(in.Value), v)
	if !v.Empty() {
		return nil, apperr.Invalid(v)
	}
	h, err := s.store.FindHealthData(ctx, in.HealthDataID)
	if err != nil {
		return nil, fail(err, MsgHealthDataNotFound, "")
	}
	if owner := h.OwnerID(); owner == nil || *owner != in.PatientID {
		return nil, apperr.Forbidden()
	}
	r := &models.HealthDataRecord{
		Value:        string(in.Value),
		Note:         in.Note,
		HealthDataID: in.HealthDataID,
		PatientID:    in.PatientID,
	}
	if err := s.store.CreateRecord(ctx, r); err != nil {
		return nil, apperr.Internal(err)
	}
	return r, nil
}

// List returns the history oldest first.
func (s *Records) List(ctx context.Context, _ string, q RecordQuery) (*RecordPage, error) {
	page := q.Page.Normalize()
	items, total, err := s.store.ListRecords(ctx, q.PatientID, q.HealthDataID, page)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &RecordPage{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (s *Records) Get(ctx context.Context, _ string, id string) (*models.HealthDataRecord, error) {
	r, err := s.store.FindRecord(ctx, id)
	if err != nil {
		return nil, fail(err, MsgRecordNotFound, "")
	}
	return r, nil
}
