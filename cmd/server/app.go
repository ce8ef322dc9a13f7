package main

import (
	"net/http"

	"github.com/sintocheck/sintocheck-api/auth"
	"github.com/sintocheck/sintocheck-api/internal/policy"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	routerCfg *policy.RouterConfig
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *policy.RouterConfig) *App {
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	ah := a.routerCfg.AuthHandler
	ph := a.routerCfg.PatientHandler
	hh := a.routerCfg.HealthDataHandler
	rh := a.routerCfg.RecordHandler
	nh := a.routerCfg.NoteHandler
	dh := a.routerCfg.RelationshipHandler

	// Public routes
	a.mux.HandleFunc("POST /signup/patient", ah.SignupPatient)
	a.mux.HandleFunc("POST /signup/doctor", ah.SignupDoctor)
	a.mux.HandleFunc("POST /login/patient", ah.LoginPatient)
	a.mux.HandleFunc("DELETE /doctor/{id}", ph.DeleteDoctor)

	// Patient profile
	a.mux.Handle("GET /patient/{id}", a.owned(policy.PathPatient("id"), ph.Get))
	a.mux.Handle("PUT /patient/{id}", a.owned(policy.PathPatient("id"), ph.Update))
	a.mux.Handle("DELETE /patient/{id}", a.owned(policy.PathPatient("id"), ph.Delete))
	a.mux.Handle("POST /image/patient", a.owned(policy.BodyPatient("patientId"), ph.SetImage))
	a.mux.Handle("GET /image/patient/{id}", a.owned(policy.PathPatient("id"), ph.GetImage))

	// Health data definitions
	viaHealthData := policy.PathVia("id", policy.KindHealthData)
	a.mux.Handle("GET /healthData", a.authenticated(hh.Catalog))
	a.mux.Handle("GET /personalizedHealthData/{id}", a.owned(policy.PathPatient("id"), hh.Personalized))
	a.mux.Handle("POST /personalizedHealthData", a.owned(policy.BodyPatient("patientId"), hh.Create))
	a.mux.Handle("PUT /personalizedHealthData/{id}", a.owned(viaHealthData, hh.Update))
	a.mux.Handle("DELETE /personalizedHealthData/{id}", a.owned(viaHealthData, hh.Delete))
	a.mux.Handle("PUT /trackHealthData/{id}", a.owned(viaHealthData, hh.Track))
	a.mux.Handle("PUT /untrackHealthData/{id}", a.owned(viaHealthData, hh.Untrack))
	a.mux.Handle("GET /trackedHealthData/{id}", a.owned(policy.PathPatient("id"), hh.Tracked))

	// Health data records
	a.mux.Handle("GET /healthDataRecords/{patientId}/{healthDataId}", a.owned(policy.PathPatient("patientId"), rh.List))
	a.mux.Handle("POST /healthDataRecord", a.owned(policy.BodyPatient("patientId"), rh.Create))
	a.mux.Handle("GET /healthDataRecord/{id}", a.owned(policy.PathVia("id", policy.KindHealthDataRecord), rh.Get))

	// Notes
	a.mux.Handle("GET /notes/{patientId}", a.owned(policy.PathPatient("patientId"), nh.List))
	a.mux.Handle("POST /note", a.owned(policy.BodyPatient("patientId"), nh.Create))
	a.mux.Handle("DELETE /note/{id}", a.owned(policy.PathVia("id", policy.KindNote), nh.Delete))

	// Doctor-patient relationship
	a.mux.Handle("GET /doctorPatientRelationship/{patientId}", a.owned(policy.PathPatient("patientId"), dh.Doctors))
	a.mux.Handle("POST /doctorPatientRelationship", a.owned(policy.BodyPatient("patientId"), dh.Link))
	a.mux.Handle("DELETE /doctorPatientRelationship", a.owned(policy.BodyPatient("patientId"), dh.Unlink))
}

// authenticated runs the Identity Gate only.
func (a *App) authenticated(h http.HandlerFunc) http.Handler {
	return auth.RequireToken(a.routerCfg.Verifier)(h)
}

// owned runs the Identity Gate, then the ownership check for d.
func (a *App) owned(d policy.Descriptor, h http.HandlerFunc) http.Handler {
	return auth.RequireToken(a.routerCfg.Verifier)(a.routerCfg.Resolver.Require(d)(h))
}
