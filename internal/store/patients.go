package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

func (s *Gorm) CreatePatient(ctx context.Context, p *models.Patient) error {
	db, cancel := s.conn(ctx)
	defer cancel()
	return translate("create patient", db.Create(p).Error)
}

func (s *Gorm) FindPatient(ctx context.Context, id string) (*models.Patient, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.Patient](db, "find patient", "id = ?", id)
}

func (s *Gorm) FindPatientByPhone(ctx context.Context, phone string) (*models.Patient, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.Patient](db, "find patient by phone", "phone = ?", phone)
}

func (s *Gorm) UpdatePatient(ctx context.Context, id string, cols map[string]any) (*models.Patient, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	var out *models.Patient
	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := first[models.Patient](tx, "update patient", "id = ?", id)
		if err != nil {
			return err
		}
		if len(cols) > 0 {
			if err := tx.Model(p).Updates(cols).Error; err != nil {
				return err
			}
		}
		out, err = first[models.Patient](tx, "update patient", "id = ?", id)
		return err
	})
	if err != nil {
		return nil, translate("update patient", err)
	}
	return out, nil
}

func (s *Gorm) DeletePatient(ctx context.Context, id string) (*models.Patient, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	var out *models.Patient
	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := first[models.Patient](tx, "delete patient", "id = ?", id)
		if err != nil {
			return err
		}
		for _, owned := range []any{&models.HealthDataRecord{}, &models.HealthData{}, &models.Note{}, &models.DoctorPatient{}} {
			if err := tx.Where("patient_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, translate("delete patient", err)
	}
	return out, nil
}
