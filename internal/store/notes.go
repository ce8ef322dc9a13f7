package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

func (s *Gorm) CreateNote(ctx context.Context, n *models.Note) error {
	db, cancel := s.conn(ctx)
	defer cancel()
	return translate("create note", db.Create(n).Error)
}

func (s *Gorm) FindNote(ctx context.Context, id string) (*models.Note, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	return first[models.Note](db, "find note", "id = ?", id)
}

func (s *Gorm) ListNotes(ctx context.Context, patientID string) ([]models.Note, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	out := []models.Note{}
	if err := db.Where("patient_id = ?", patientID).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate("list notes", err)
	}
	return out, nil
}

func (s *Gorm) DeleteNote(ctx context.Context, id string) (*models.Note, error) {
	db, cancel := s.conn(ctx)
	defer cancel()
	var out *models.Note
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := first[models.Note](tx, "delete note", "id = ?", id)
		if err != nil {
			return err
		}
		if err := tx.Delete(n).Error; err != nil {
			return err
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, translate("delete note", err)
	}
	return out, nil
}
