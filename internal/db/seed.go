package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sintocheck/sintocheck-api/internal/models"
)

func unit(s string) *string    { return &s }
func bound(v float64) *float64 { return &v }

// catalog is the set of global health data every patient can personalize.
var catalog = []models.HealthData{
	{Name: "Weight", Quantitative: true, RangeMin: bound(1), RangeMax: bound(400), Unit: unit("kg")},
	{Name: "Blood pressure", Quantitative: true, RangeMin: bound(40), RangeMax: bound(250), Unit: unit("mmHg")},
	{Name: "Heart rate", Quantitative: true, RangeMin: bound(20), RangeMax: bound(250), Unit: unit("bpm")},
	{Name: "Temperature", Quantitative: true, RangeMin: bound(30), RangeMax: bound(45), Unit: unit("°C")},
	{Name: "Blood glucose", Quantitative: true, RangeMin: bound(20), RangeMax: bound(600), Unit: unit("mg/dL")},
	{Name: "Sleep", Quantitative: true, RangeMin: bound(0), RangeMax: bound(24), Unit: unit("h")},
	{Name: "Mood", Quantitative: false},
	{Name: "Headache", Quantitative: false},
}

// Seed creates the global catalog. Running it again, or from several
// processes at once, adds nothing: existing names hit idx_health_data_global_name.
func Seed(db *gorm.DB) error {
	for _, hd := range catalog {
		entry := hd
		entry.Tracked = true
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
			return fmt.Errorf("seed %q: %w", entry.Name, err)
		}
	}
	return nil
}
