package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

func (s *Gorm) Connect(ctx context.Context, doctorID, patientID string) error {
	db, cancel := s.conn(ctx)
	defer cancel()
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := first[models.Doctor](tx, "connect", "id = ?", doctorID); err != nil {
			return err
		}
		if _, err := first[models.Patient](tx, "connect", "id = ?", patientID); err != nil {
			return err
		}
		edge := models.DoctorPatient{DoctorID: doctorID, PatientID: patientID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	})
	return translate("connect", err)
}

func (s *Gorm) Disconnect(ctx context.Context, doctorID, patientID string) error {
	db, cancel := s.conn(ctx)
	defer cancel()
	err := db.Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).Delete(&models.DoctorPatient{}).Error
	return translate("disconnect", err)
}

func (s *Gorm) DoctorsOf(ctx context.Context, patientID string) ([]models.Doctor, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	out := []models.Doctor{}
	err := db.Joins("JOIN doctor_patients ON doctor_patients.doctor_id = doctors.id").
		Where("doctor_patients.patient_id = ?", patientID).
		Order("doctors.name ASC, doctors.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate("doctors of patient", err)
	}
	return out, nil
}

func (s *Gorm) PatientsOf(ctx context.Context, doctorID string) ([]models.Patient, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	out := []models.Patient{}
	err := db.Joins("JOIN doctor_patients ON doctor_patients.patient_id = patients.id").
		Where("doctor_patients.doctor_id = ?", doctorID).
		Order("patients.name ASC, patients.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate("patients of doctor", err)
	}
	return out, nil
}
