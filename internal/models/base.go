package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty primary key with a random UUID.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// Ownable is implemented by rows that hang off a patient. OwnerID returns
// nil for rows nobody owns (global health data).
type Ownable interface {
	OwnerID() *string
}

// BeforeCreate hooks assign ids so callers can reference a row before it
// is written.

func (p *Patient) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	newID(&d.ID)
	return nil
}

func (h *HealthData) BeforeCreate(*gorm.DB) error {
	newID(&h.ID)
	return nil
}

func (r *HealthDataRecord) BeforeCreate(*gorm.DB) error {
	newID(&r.ID)
	return nil
}

func (n *Note) BeforeCreate(*gorm.DB) error {
	newID(&n.ID)
	return nil
}
