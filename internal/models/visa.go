package models

import (
	"time"

	"github.com/lib/pq"
)

// VisaRequirements is the static document checklist for one destination
// country. The catalog ships with the service; only progress is per-user.
type VisaRequirements struct {
	CountryCode string         `json:"country_code"`
	CountryName string         `json:"country_name"`
	VisaType    string         `json:"visa_type"`
	Categories  []VisaCategory `json:"categories"`
}

type VisaCategory struct {
	Title string     `json:"title"`
	Items []VisaItem `json:"items"`
}

type VisaItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// VisaProgress records which checklist items a student has ticked off for
// one country.
type VisaProgress struct {
	UserID      string         `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	CountryCode string         `gorm:"column:country_code;type:text;primaryKey" json:"country_code"`
	CheckedIDs  pq.StringArray `gorm:"column:checked_ids;type:text[]" json:"checked_ids"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (VisaProgress) TableName() string { return "visa_progress" }
