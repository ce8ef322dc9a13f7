package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

// globalNameIndex makes catalog names unique among ownerless rows, which
// the (name, patient_id) index does not cover since NULLs never collide.
const globalNameIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_health_data_global_name
ON health_data (name) WHERE patient_id IS NULL`

// Migrate creates or updates every table, including the doctor_patients
// join table and the unique indexes the repository relies on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Patient{},
		&models.Doctor{},
		&models.HealthData{},
		&models.HealthDataRecord{},
		&models.Note{},
		&models.DoctorPatient{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := db.Exec(globalNameIndex).Error; err != nil {
		return fmt.Errorf("migrate global name index: %w", err)
	}
	return nil
}
