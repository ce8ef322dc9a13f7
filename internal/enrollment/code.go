// Package enrollment generates the short codes patients type in to link
// themselves to a doctor.
package enrollment

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	Alphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	Length      = 6
	MaxAttempts = 5
)

// RandSource draws a uniform integer in [0, n).
type RandSource interface {
	Intn(n int) int
}

// CryptoRand draws from crypto/rand.
type CryptoRand struct{}

func (CryptoRand) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("enrollment: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}

// ExistsFunc reports whether a doctor already holds code.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator draws codes and checks them against existing doctors. After
// MaxAttempts collisions the last draw is returned anyway; the unique index
// on doctors.code is the real guard.
type Generator struct {
	rand     RandSource
	exists   ExistsFunc
	attempts int
}

// NewGenerator returns a Generator using crypto/rand when src is nil.
func NewGenerator(src RandSource, exists ExistsFunc) *Generator {
	if src == nil {
		src = CryptoRand{}
	}
	return &Generator{rand: src, exists: exists, attempts: MaxAttempts}
}

// Draw returns one code without consulting storage.
func (g *Generator) Draw() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[g.rand.Intn(len(Alphabet))])
	}
	return b.String()
}

// Generate returns a code no doctor holds yet, or the last draw when every
// attempt collided.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	var code string
	for i := 0; i < g.attempts; i++ {
		code = g.Draw()
		if g.exists == nil {
			return code, nil
		}
		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return code, nil
}

// Valid reports whether s has the shape of an enrollment code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
