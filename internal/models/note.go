package models

import "time"

// Note is a free-text entry owned by one patient. Notes are created and
// deleted, never edited.
type Note struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	PatientID string    `gorm:"type:varchar(36);not null;index" json:"patientId"`
}

// OwnerID implements Ownable.
func (n *Note) OwnerID() *string { return &n.PatientID }
