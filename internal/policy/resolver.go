package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sintocheck/sintocheck-api/auth"
	"github.com/sintocheck/sintocheck-api/gate"
	"github.com/sintocheck/sintocheck-api/httpx"
	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
)

// maxBodyBytes bounds the body buffered for FromBody descriptors.
const maxBodyBytes = 1 << 20

// Lookup is the part of the repository the resolver reads.
type Lookup interface {
	FindPatient(ctx context.Context, id string) (*models.Patient, error)
	FindHealthData(ctx context.Context, id string) (*models.HealthData, error)
	FindRecord(ctx context.Context, id string) (*models.HealthDataRecord, error)
	FindNote(ctx context.Context, id string) (*models.Note, error)
}

// Resolver decides whether a principal owns the resource a route targets.
// It loads exactly one row per decision and never walks past one hop.
type Resolver struct {
	lookup Lookup
	gate   *gate.Gate[string]
}

// NewResolver registers the ownership policy for every resource kind.
func NewResolver(lookup Lookup) *Resolver {
	g := gate.NewGate[string]()
	ownership := NewOwnershipPolicy()
	for _, kind := range []string{KindPatient, KindHealthData, KindHealthDataRecord, KindNote} {
		g.Register(kind, ownership)
	}
	return &Resolver{lookup: lookup, gate: g}
}

// Authorize returns nil when principal owns the resource id names under d.
// An empty id is a MissingID error; a missing row, an ownerless row or a
// different owner are all Forbidden.
func (r *Resolver) Authorize(ctx context.Context, principal string, action gate.Action, d Descriptor, id string) error {
	if id == "" {
		return apperr.MissingID()
	}
	resource, err := r.load(ctx, d.Kind(), id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Forbidden()
	}
	if err != nil {
		return apperr.Internal(err)
	}
	if err := r.gate.Authorize(ctx, principal, action, d.Kind(), resource); err != nil {
		if errors.Is(err, gate.ErrUnauthorized) {
			return apperr.Forbidden()
		}
		return apperr.Internal(err)
	}
	return nil
}

func (r *Resolver) load(ctx context.Context, kind, id string) (models.Ownable, error) {
	switch kind {
	case KindPatient:
		return r.lookup.FindPatient(ctx, id)
	case KindHealthData:
		return r.lookup.FindHealthData(ctx, id)
	case KindHealthDataRecord:
		return r.lookup.FindRecord(ctx, id)
	case KindNote:
		return r.lookup.FindNote(ctx, id)
	default:
		return nil, fmt.Errorf("policy: unknown resource kind %q", kind)
	}
}

// Require returns middleware enforcing d. It runs after auth.RequireToken;
// a request without a principal is rejected as unauthenticated. The approved
// identifier is stored with auth.WithAuthorizedID so handlers act on it
// rather than on their own reading of the request.
func (r *Resolver) Require(d Descriptor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			principal, ok := auth.PrincipalFromContext(req.Context())
			if !ok {
				httpx.Error(w, req, apperr.AuthenticationFailed())
				return
			}
			id, err := Identifier(req, d)
			if err != nil {
				httpx.Error(w, req, err)
				return
			}
			if err := r.Authorize(req.Context(), principal, gate.ActionForMethod(req.Method), d, id); err != nil {
				httpx.Error(w, req, err)
				return
			}
			next.ServeHTTP(w, req.WithContext(auth.WithAuthorizedID(req.Context(), id)))
		})
	}
}

// Identifier extracts the identifier d points at. Body reads leave
// req.Body intact for the handler.
func Identifier(req *http.Request, d Descriptor) (string, error) {
	src, field := d.Locate()
	if src == FromPath {
		return req.PathValue(field), nil
	}
	if req.Body == nil {
		return "", nil
	}
	raw, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
	req.Body.Close()
	if err != nil {
		return "", apperr.BadRequest("Invalid request body")
	}
	req.Body = io.NopCloser(bytes.NewReader(raw))

	var fields map[string]json.RawMessage
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &fields) != nil {
		return "", nil
	}
	var id string
	if json.Unmarshal(fields[field], &id) != nil {
		return "", nil
	}
	return id, nil
}
