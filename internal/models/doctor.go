package models

import "time"

// Doctor is linked to patients through DoctorPatient edges.
// Code is the enrollment code patients type in to link themselves.
type Doctor struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Phone      string    `gorm:"size:50;index;not null" json:"phone"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Code       string    `gorm:"size:6;uniqueIndex;not null" json:"code"`
	Speciality string    `gorm:"size:255" json:"speciality"`
	Address    string    `gorm:"size:500" json:"address"`
}

// DoctorPatient is one doctor-patient link. The composite primary key keeps
// a pair from being stored twice.
type DoctorPatient struct {
	DoctorID  string    `gorm:"type:varchar(36);primaryKey" json:"doctorId"`
	PatientID string    `gorm:"type:varchar(36);primaryKey;index" json:"patientId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (DoctorPatient) TableName() string { return "doctor_patients" }
