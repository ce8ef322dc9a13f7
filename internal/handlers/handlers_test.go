package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sintocheck/sintocheck-api/auth"
	"github.com/sintocheck/sintocheck-api/httpx"
	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/store"
)

type echoIn struct {
	Name string `json:"name"`
}

type ownedIn struct {
	Title     string `json:"title"`
	PatientID string `json:"patientId"`
}

func ownerField(in *ownedIn) *string { return &in.PatientID }

func TestServe_PassesPrincipalAndInput(t *testing.T) {
	var gotPrincipal string
	op := func(_ context.Context, principal string, in echoIn) (map[string]string, error) {
		gotPrincipal = principal
		return map[string]string{"hello": in.Name}, nil
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ana"}`))
	req = req.WithContext(auth.WithPrincipal(req.Context(), "p1"))
	rr := httptest.NewRecorder()

	serve(rr, req, http.StatusCreated, jsonBody[echoIn], op)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "p1", gotPrincipal)
	assert.JSONEq(t, `{"hello":"ana"}`, rr.Body.String())
}

func TestServe_TypedErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Conflict("Health Data already exists"), http.StatusConflict, "Health Data already exists"},
		{apperr.NotFound("Doctor not found"), http.StatusNotFound, "Doctor not found"},
		{apperr.Forbidden(), http.StatusForbidden, "Unauthorized"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		op := func(context.Context, string, struct{}) (any, error) { return nil, tc.err }
		rr := httptest.NewRecorder()
		serve(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, noInput, op)

		assert.Equal(t, tc.status, rr.Code)
		var body httpx.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, tc.msg, body.Message)
		assert.NotContains(t, rr.Body.String(), "pq:")
	}
}

func TestJSONBody_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	_, err := jsonBody[echoIn](req)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	in, err := jsonBody[echoIn](req)
	require.NoError(t, err)
	assert.Empty(t, in.Name)
}

func TestOwnedBody_UsesAuthorizedID(t *testing.T) {
	for _, payload := range []string{
		`{"title":"t","patientId":"alice"}`,
		`{"title":"t","patientId":"alice","PatientId":"bob"}`,
		`{"title":"t","PATIENTID":"bob"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/note", strings.NewReader(payload))
		req = req.WithContext(auth.WithAuthorizedID(req.Context(), "alice"))

		in, err := ownedBody(ownerField)(req)
		require.NoError(t, err, payload)
		assert.Equal(t, "alice", in.PatientID, payload)
		assert.Equal(t, "t", in.Title, payload)
	}
}

func TestOwnedBody_WithoutAuthorization(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/note", strings.NewReader(`{"patientId":"alice"}`))
	_, err := ownedBody(ownerField)(req)
	assert.ErrorIs(t, err, apperr.MissingID())

	req = httptest.NewRequest(http.MethodPost, "/note", strings.NewReader(`{"patientId":`))
	req = req.WithContext(auth.WithAuthorizedID(req.Context(), "alice"))
	_, err = ownedBody(ownerField)(req)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestPathValue_Missing(t *testing.T) {
	_, err := pathValue("id")(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, apperr.MissingID())
}

func TestPageQuery(t *testing.T) {
	p, err := pageQuery(httptest.NewRequest(http.MethodGet, "/?limit=20&offset=40", nil))
	require.NoError(t, err)
	assert.Equal(t, store.Page{Limit: 20, Offset: 40}, p)

	p, err = pageQuery(httptest.NewRequest(http.MethodGet, "/?limit=100000", nil))
	require.NoError(t, err)
	assert.Equal(t, store.MaxPageLimit, p.Limit)

	_, err = pageQuery(httptest.NewRequest(http.MethodGet, "/?offset=-1", nil))
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}
