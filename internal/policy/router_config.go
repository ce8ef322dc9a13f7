package policy

import (
	"github.com/sintocheck/sintocheck-api/auth"
	"github.com/sintocheck/sintocheck-api/internal/config"
	"github.com/sintocheck/sintocheck-api/internal/enrollment"
	"github.com/sintocheck/sintocheck-api/internal/handlers"
	"github.com/sintocheck/sintocheck-api/internal/services"
	"github.com/sintocheck/sintocheck-api/internal/store"
)

// RouterConfig holds the configured handlers and the two gates every
// protected route passes through.
type RouterConfig struct {
	// Verifier backs the Identity Gate.
	Verifier auth.Verifier
	// Resolver backs the ownership check.
	Resolver *Resolver

	AuthHandler         *handlers.AuthHandler
	PatientHandler      *handlers.PatientHandler
	HealthDataHandler   *handlers.HealthDataHandler
	RecordHandler       *handlers.RecordHandler
	NoteHandler         *handlers.NoteHandler
	RelationshipHandler *handlers.RelationshipHandler
}

// NewRouterConfig wires services and handlers over s.
func NewRouterConfig(s store.Store, cfg *config.Config, signer *auth.JWTSigner) *RouterConfig {
	hasher := services.BcryptHasher{Cost: cfg.Auth.BcryptCost}
	codes := enrollment.NewGenerator(nil, s.DoctorCodeExists)

	creds := services.NewCredentials(s, hasher, signer, codes, cfg.Policy.DoctorPhoneUnique)
	accounts := services.NewAccounts(s, cfg.Policy.DoctorDeletion)

	return &RouterConfig{
		Verifier:            signer,
		Resolver:            NewResolver(s),
		AuthHandler:         handlers.NewAuthHandler(creds),
		PatientHandler:      handlers.NewPatientHandler(accounts),
		HealthDataHandler:   handlers.NewHealthDataHandler(services.NewHealthDataService(s)),
		RecordHandler:       handlers.NewRecordHandler(services.NewRecords(s)),
		NoteHandler:         handlers.NewNoteHandler(services.NewNotes(s)),
		RelationshipHandler: handlers.NewRelationshipHandler(services.NewRelationships(s)),
	}
}
