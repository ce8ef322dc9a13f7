// Package auth issues and verifies session tokens and carries the
// authenticated principal through the request context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window of a session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrAuthenticationFailed covers every reason a token is rejected. Callers
// must not tell missing, malformed, expired and forged tokens apart.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Claims is the token payload. Name and Phone are a client convenience and
// are never re-validated against storage.
type Claims struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues session tokens.
type Signer interface {
	Sign(id, name, phone string) (string, error)
}

// Verifier validates a session token and returns its claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// JWTSigner signs HS256 tokens with a process-wide secret.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTSigner returns a signer for secret. A non-positive ttl selects
// DefaultTokenTTL. The secret must be non-empty.
func NewJWTSigner(secret string, ttl time.Duration) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source. Used by tests.
func (s *JWTSigner) WithClock(now func() time.Time) *JWTSigner {
	s.now = now
	return s
}

func (s *JWTSigner) Sign(id, name, phone string) (string, error) {
	issued := s.now()
	claims := Claims{
		ID:    id,
		Name:  name,
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *JWTSigner) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrAuthenticationFailed
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrAuthenticationFailed
	}
	return claims, nil
}
