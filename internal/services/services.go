// Package services holds the operations behind each route. Every operation
// takes the authenticated principal (empty on public routes) and parsed
// input, and returns a result or an *apperr.Error. Ownership has already
// been checked by the time an operation runs.
package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/store"
)

// Hasher is a one-way password hash.
type Hasher interface {
	Hash(raw string) (string, error)
	// Compare returns nil when raw matches hash.
	Compare(hash, raw string) error
}

// BcryptHasher hashes with bcrypt at Cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(raw string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Compare(hash, raw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
}

// Domain messages.
const (
	MsgPhoneRegistered    = "Phone already registered"
	MsgHealthDataExists   = "Health Data already exists"
	MsgDoctorNotFound     = "Doctor not found"
	MsgPatientNotFound    = "Patient not found"
	MsgHealthDataNotFound = "Health Data not found"
	MsgRecordNotFound     = "Health Data Record not found"
	MsgNoteNotFound       = "Note not found"
	MsgGlobalHealthData   = "Global Health Data cannot be deleted"
	MsgNoImage            = "No image provided"
)

// fail maps repository errors onto application errors. notFound is the
// message used when the row is missing; conflict when a constraint rejects
// the write.
func fail(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound) && notFound != "":
		return apperr.NotFound(notFound)
	case errors.Is(err, store.ErrDuplicate) && conflict != "":
		return apperr.Conflict(conflict)
	default:
		return apperr.Internal(err)
	}
}
