package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

func (s *Gorm) CreateHealthData(ctx context.Context, h *models.HealthData) error {
	db, cancel := s.conn(ctx)
	defer cancel()
	return translate("create health data", db.Create(h).Error)
}

func (s *Gorm) FindHealthData(ctx context.Context, id string) (*models.HealthData, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.HealthData](db, "find health data", "id = ?", id)
}

func (s *Gorm) FindHealthDataByName(ctx context.Context, patientID, name string) (*models.HealthData, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.HealthData](db, "find health data by name", "patient_id = ? AND name = ?", patientID, name)
}

func (s *Gorm) UpdateHealthData(ctx context.Context, id string, cols map[string]any) (*models.HealthData, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	var out *models.HealthData
	err := db.Transaction(func(tx *gorm.DB) error {
		h, err := first[models.HealthData](tx, "update health data", "id = ?", id)
		if err != nil {
			return err
		}
		if len(cols) > 0 {
			if err := tx.Model(h).Updates(cols).Error; err != nil {
				return err
			}
		}
		out, err = first[models.HealthData](tx, "update health data", "id = ?", id)
		return err
	})
	if err != nil {
		return nil, translate("update health data", err)
	}
	return out, nil
}

func (s *Gorm) DeleteOwnedHealthData(ctx context.Context, id string) (*models.HealthData, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	var out *models.HealthData
	err := db.Transaction(func(tx *gorm.DB) error {
		h, err := first[models.HealthData](tx, "delete health data", "id = ? AND patient_id IS NOT NULL", id)
		if err != nil {
			return err
		}
		if err := tx.Where("health_data_id = ?", id).Delete(&models.HealthDataRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(h).Error; err != nil {
			return err
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, translate("delete health data", err)
	}
	return out, nil
}

func (s *Gorm) ListHealthData(ctx context.Context, f HealthDataFilter) ([]models.HealthData, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	q := db.Model(&models.HealthData{})
	if f.Global {
		q = q.Where("patient_id IS NULL")
	} else {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.TrackedOnly {
		q = q.Where("tracked = ?", true)
	}
	var out []models.HealthData
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate("list health data", err)
	}
	return out, nil
}
