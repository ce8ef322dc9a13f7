package models

import "time"

// HealthData is a metric definition. A nil PatientID marks a global
// catalog entry that nobody owns; otherwise (Name, PatientID) is unique.
type HealthData struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"size:255;not null;uniqueIndex:idx_health_data_name_patient" json:"name"`
	Quantitative bool      `gorm:"not null;default:false" json:"quantitative"`
	RangeMin     *float64  `json:"rangeMin"`
	RangeMax     *float64  `json:"rangeMax"`
	Unit         *string   `gorm:"size:50" json:"unit"`
	Tracked      bool      `gorm:"not null;default:true" json:"tracked"`
	PatientID    *string   `gorm:"type:varchar(36);index;uniqueIndex:idx_health_data_name_patient" json:"patientId"`
}

func (HealthData) TableName() string { return "health_data" }

// OwnerID implements Ownable.
func (h *HealthData) OwnerID() *string { return h.PatientID }

// IsGlobal reports whether h is a catalog entry.
func (h *HealthData) IsGlobal() bool { return h.PatientID == nil }

// HealthDataChanges is an edit of a personalized definition. The tracked
// flag has its own operations and is not part of it.
type HealthDataChanges struct {
	Name         *string  `json:"name"`
	Quantitative *bool    `json:"quantitative"`
	RangeMin     *float64 `json:"rangeMin"`
	RangeMax     *float64 `json:"rangeMax"`
	Unit         *string  `json:"unit"`
}

// Columns returns the changed columns keyed by database column name.
func (c HealthDataChanges) Columns() map[string]any {
	cols := map[string]any{}
	if c.Name != nil {
		cols["name"] = *c.Name
	}
	if c.Quantitative != nil {
		cols["quantitative"] = *c.Quantitative
	}
	if c.RangeMin != nil {
		cols["range_min"] = *c.RangeMin
	}
	if c.RangeMax != nil {
		cols["range_max"] = *c.RangeMax
	}
	if c.Unit != nil {
		cols["unit"] = *c.Unit
	}
	return cols
}

// Apply returns a copy of h with the changes applied.
func (c HealthDataChanges) Apply(h HealthData) HealthData {
	if c.Name != nil {
		h.Name = *c.Name
	}
	if c.Quantitative != nil {
		h.Quantitative = *c.Quantitative
	}
	if c.RangeMin != nil {
		h.RangeMin = c.RangeMin
	}
	if c.RangeMax != nil {
		h.RangeMax = c.RangeMax
	}
	if c.Unit != nil {
		h.Unit = c.Unit
	}
	return h
}

// HealthDataRecord is one append-only measurement. PatientID duplicates the
// definition's owner so ownership is checked without a second hop.
type HealthDataRecord struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"index:idx_record_history,priority:3" json:"createdAt"`
	Value        string    `gorm:"type:text;not null" json:"value"`
	Note         *string   `gorm:"type:text" json:"note"`
	HealthDataID string    `gorm:"type:varchar(36);not null;index:idx_record_history,priority:2" json:"healthDataId"`
	PatientID    string    `gorm:"type:varchar(36);not null;index:idx_record_history,priority:1" json:"patientId"`
}

// OwnerID implements Ownable.
func (r *HealthDataRecord) OwnerID() *string { return &r.PatientID }
