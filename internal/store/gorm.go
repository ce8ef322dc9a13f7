package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DefaultTimeout bounds a single repository call.
const DefaultTimeout = 5 * time.Second

// Gorm implements Store on a GORM connection opened with TranslateError.
type Gorm struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ Store = (*Gorm)(nil)

// NewGorm returns a repository whose calls each run under timeout.
func NewGorm(db *gorm.DB, timeout time.Duration) *Gorm {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gorm{db: db, timeout: timeout}
}

// conn derives the per-call deadline from the caller's context.
func (s *Gorm) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// translate maps driver errors onto the package sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// first loads the row matching query into dest.
func first[T any](db *gorm.DB, op string, query string, args ...any) (*T, error) {
	var row T
	if err := db.Where(query, args...).First(&row).Error; err != nil {
		return nil, translate(op, err)
	}
	return &row, nil
}
