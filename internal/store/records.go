package store

import (
	"context"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

func (s *Gorm) CreateRecord(ctx context.Context, r *models.HealthDataRecord) error {
	db, cancel := s.conn(ctx)
	defer cancel()
	return translate("create record", db.Create(r).Error)
}

func (s *Gorm) FindRecord(ctx context.Context, id string) (*models.HealthDataRecord, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.HealthDataRecord](db, "find record", "id = ?", id)
}

func (s *Gorm) ListRecords(ctx context.Context, patientID, healthDataID string, page Page) ([]models.HealthDataRecord, int64, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	page = page.Normalize()
	q := db.Model(&models.HealthDataRecord{}).Where("patient_id = ? AND health_data_id = ?", patientID, healthDataID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate("count records", err)
	}
	out := []models.HealthDataRecord{}
	if err := q.Order("created_at ASC, id ASC").Limit(page.Limit).Offset(page.Offset).Find(&out).Error; err != nil {
		return nil, 0, translate("list records", err)
	}
	return out, total, nil
}
