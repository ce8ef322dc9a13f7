package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

func (s *Gorm) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	db, cancel := s.conn(ctx)
	defer cancel()
	return translate("create doctor", db.Create(d).Error)
}

func (s *Gorm) FindDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.Doctor](db, "find doctor", "id = ?", id)
}

func (s *Gorm) FindDoctorByCode(ctx context.Context, code string) (*models.Doctor, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.Doctor](db, "find doctor by code", "code = ?", code)
}

func (s *Gorm) FindDoctorByPhone(ctx context.Context, phone string) (*models.Doctor, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.Doctor](db, "find doctor by phone", "phone = ?", phone)
}

func (s *Gorm) DoctorCodeExists(ctx context.Context, code string) (bool, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	var count int64
	if err := db.Model(&models.Doctor{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, translate("doctor code exists", err)
	}
	return count > 0, nil
}

func (s *Gorm) DeleteDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	var out *models.Doctor
	err := db.Transaction(func(tx *gorm.DB) error {
		d, err := first[models.Doctor](tx, "delete doctor", "id = ?", id)
		if err != nil {
			return err
		}
		if err := tx.Where("doctor_id = ?", id).Delete(&models.DoctorPatient{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(d).Error; err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, translate("delete doctor", err)
	}
	return out, nil
}
