package models

import "time"

// Patient is the root of an ownership subtree: health data, records, notes
// and doctor relationships all resolve to exactly one patient.
type Patient struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Phone             string    `gorm:"size:50;uniqueIndex;not null" json:"phone"`
	Password          string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	Birthdate         string    `gorm:"size:32" json:"birthdate"`
	Height            float64   `json:"height"`
	Weight            float64   `json:"weight"`
	Medicine          string    `gorm:"type:text" json:"medicine"`
	MedicalBackground string    `gorm:"type:text" json:"medicalBackground"`
	ImageURL          *string   `gorm:"size:500" json:"imageurl"`
	ImageFilename     *string   `gorm:"size:255" json:"imageFilename"`
}

// OwnerID implements Ownable: a patient owns itself.
func (p *Patient) OwnerID() *string { return &p.ID }

// PatientChanges is a partial self-service edit. Nil fields are left untouched.
type PatientChanges struct {
	Name              *string  `json:"name"`
	Phone             *string  `json:"phone"`
	Birthdate         *string  `json:"birthdate"`
	Height            *float64 `json:"height"`
	Weight            *float64 `json:"weight"`
	Medicine          *string  `json:"medicine"`
	MedicalBackground *string  `json:"medicalBackground"`
}

// Columns returns the changed columns keyed by database column name.
func (c PatientChanges) Columns() map[string]any {
	cols := map[string]any{}
	if c.Name != nil {
		cols["name"] = *c.Name
	}
	if c.Phone != nil {
		cols["phone"] = *c.Phone
	}
	if c.Birthdate != nil {
		cols["birthdate"] = *c.Birthdate
	}
	if c.Height != nil {
		cols["height"] = *c.Height
	}
	if c.Weight != nil {
		cols["weight"] = *c.Weight
	}
	if c.Medicine != nil {
		cols["medicine"] = *c.Medicine
	}
	if c.MedicalBackground != nil {
		cols["medical_background"] = *c.MedicalBackground
	}
	return cols
}
