package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/sintocheck/sintocheck-api/auth"
	"github.com/sintocheck/sintocheck-api/internal/apperr"
	"github.com/sintocheck/sintocheck-api/internal/enrollment"
	"github.com/sintocheck/sintocheck-api/internal/models"
	"github.com/sintocheck/sintocheck-api/internal/store"
	"github.com/sintocheck/sintocheck-api/validation"
)

// doctorCreateAttempts bounds retries when the code index rejects a signup.
const doctorCreateAttempts = 3

// PatientSignup is the body of POST /signup/patient.
type PatientSignup struct {
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	Password          string  `json:"password"`
	Birthdate         string  `json:"birthdate"`
	Height            float64 `json:"height"`
	Weight            float64 `json:"weight"`
	Medicine          string  `json:"medicine"`
	MedicalBackground string  `json:"medicalBackground"`
}

func (in PatientSignup) validate() error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("phone", in.Phone, v)
	validation.Required("password", in.Password, v)
	validation.MaxLen("phone", in.Phone, 50, v)
	validation.MaxLen("name", in.Name, 255, v)
	if !v.Empty() {
		return apperr.Invalid(v)
	}
	return nil
}

// DoctorSignup is the body of POST /signup/doctor.
type DoctorSignup struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	Speciality string `json:"speciality"`
	Address    string `json:"address"`
}

func (in DoctorSignup) validate() error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("phone", in.Phone, v)
	validation.Required("password", in.Password, v)
	validation.MaxLen("phone", in.Phone, 50, v)
	if !v.Empty() {
		return apperr.Invalid(v)
	}
	return nil
}

// Login is the body of POST /login/patient.
type Login struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Session is the login response: the patient plus its session token.
type Session struct {
	models.Patient
	Token string `json:"token"`
}

type credentialStore interface {
	store.PatientRepository
	store.DoctorRepository
}

// Credentials registers accounts and issues session tokens.
type Credentials struct {
	store             credentialStore
	hasher            Hasher
	signer            auth.Signer
	codes             *enrollment.Generator
	doctorPhoneUnique bool
}

func NewCredentials(s credentialStore, hasher Hasher, signer auth.Signer, codes *enrollment.Generator, doctorPhoneUnique bool) *Credentials {
	return &Credentials{store: s, hasher: hasher, signer: signer, codes: codes, doctorPhoneUnique: doctorPhoneUnique}
}

// RegisterPatient creates a patient. A phone already in use is a Conflict;
// the unique index settles concurrent signups.
func (c *Credentials) RegisterPatient(ctx context.Context, _ string, in PatientSignup) (*models.Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := c.store.FindPatientByPhone(ctx, in.Phone); err == nil {
		return nil, apperr.Conflict(MsgPhoneRegistered)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal(err)
	}
	hash, err := c.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	p := &models.Patient{
		Name:              in.Name,
		Phone:             in.Phone,
		Password:          hash,
		Birthdate:         in.Birthdate,
		Height:            in.Height,
		Weight:            in.Weight,
		Medicine:          in.Medicine,
		MedicalBackground: in.MedicalBackground,
	}
	if err := c.store.CreatePatient(ctx, p); err != nil {
		return nil, fail(err, "", MsgPhoneRegistered)
	}
	return p, nil
}

// RegisterDoctor creates a doctor with a fresh enrollment code.
func (c *Credentials) RegisterDoctor(ctx context.Context, _ string, in DoctorSignup) (*models.Doctor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if c.doctorPhoneUnique {
		if _, err := c.store.FindDoctorByPhone(ctx, in.Phone); err == nil {
			return nil, apperr.Conflict(MsgPhoneRegistered)
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
	}
	hash, err := c.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	for attempt := 1; ; attempt++ {
		code, err := c.codes.Generate(ctx)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		d := &models.Doctor{
			Name:       in.Name,
			Phone:      in.Phone,
			Password:   hash,
			Code:       code,
			Speciality: in.Speciality,
			Address:    in.Address,
		}
		err = c.store.CreateDoctor(ctx, d)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, store.ErrDuplicate) || attempt == doctorCreateAttempts {
			return nil, apperr.Internal(err)
		}
		log.Warn().Int("attempt", attempt).Msg("enrollment code collided on insert, retrying")
	}
}

// LoginPatient checks phone and password and returns a session. Every
// mismatch is the same AuthenticationFailed error.
func (c *Credentials) LoginPatient(ctx context.Context, _ string, in Login) (*Session, error) {
	p, err := c.store.FindPatientByPhone(ctx, in.Phone)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.AuthenticationFailed()
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := c.hasher.Compare(p.Password, in.Password); err != nil {
		return nil, apperr.AuthenticationFailed()
	}
	token, err := c.signer.Sign(p.ID, p.Name, p.Phone)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Session{Patient: *p, Token: token}, nil
}
