package handlers

import (
	"net/http"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/services"
)

type RecordHandler struct {
	records *services.Records
}

func NewRecordHandler(records *services.Records) *RecordHandler {
	return &RecordHandler{records: records}
}

// List serves GET /healthDataRecords/{patientId}/{healthDataId}?limit=&offset=.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	decode := func(r *http.Request) (services.RecordQuery, error) {
		q := services.RecordQuery{PatientID: r.PathValue("patientId"), HealthDataID: r.PathValue("healthDataId")}
		if q.PatientID == "" || q.HealthDataID == "" {
			return q, apperr.MissingID()
		}
		page, err := pageQuery(r)
		q.Page = page
		return q, err
	}
	serve(w, r, http.StatusOK, decode, h.records.List)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, ownedBody(func(in *services.NewRecord) *string { return &in.PatientID }), h.records.Create)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, pathValue("id"), h.records.Get)
}
