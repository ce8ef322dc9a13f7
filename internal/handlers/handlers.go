// Package handlers adapts service operations to net/http. Each handler
// decodes its input, runs one operation with the request's principal and
// writes the result or error as JSON.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/sintocheck/sintocheck-api/auth"
	"github.com/sintocheck/sintocheck-api/httpx"
	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/store"
)

const maxBodyBytes = 1 << 20

// Op is a transport-independent operation: principal and parsed input in,
// result or typed error out.
type Op[I, O any] func(ctx context.Context, principal string, in I) (O, error)

// Decoder builds an operation's input from a request.
type Decoder[I any] func(r *http.Request) (I, error)

// serve runs op and writes its result with status.
func serve[I, O any](w http.ResponseWriter, r *http.Request, status int, decode Decoder[I], op Op[I, O]) {
	in, err := decode(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())
	out, err := op(r.Context(), principal, in)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, status, out)
}

// pathValue reads a path wildcard. An empty value is a MissingID error.
func pathValue(name string) Decoder[string] {
	return func(r *http.Request) (string, error) {
		v := r.PathValue(name)
		if v == "" {
			return "", apperr.MissingID()
		}
		return v, nil
	}
}

// jsonBody decodes the request body into T.
func jsonBody[T any](r *http.Request) (T, error) {
	var in T
	if r.Body == nil {
		return in, apperr.BadRequest("Invalid request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return in, apperr.BadRequest("Invalid request body")
	}
	return in, nil
}

// ownedBody decodes T and replaces the owner field that field points at
// with the identifier the ownership check approved.
func ownedBody[T any](field func(*T) *string) Decoder[T] {
	return func(r *http.Request) (T, error) {
		in, err := jsonBody[T](r)
		if err != nil {
			return in, err
		}
		id, ok := auth.AuthorizedIDFromContext(r.Context())
		if !ok {
			return in, apperr.MissingID()
		}
		*field(&in) = id
		return in, nil
	}
}

func noInput(*http.Request) (struct{}, error) { return struct{}{}, nil }

// pageQuery reads limit and offset query parameters.
func pageQuery(r *http.Request) (store.Page, error) {
	var p store.Page
	q := r.URL.Query()
	for name, dst := range map[string]*int{"limit": &p.Limit, "offset": &p.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, apperr.BadRequest("Invalid " + name)
		}
		*dst = n
	}
	return p.Normalize(), nil
}
