package models

import (
	"time"

	"gorm.io/datatypes"
)

// StudentProfile is the shared academic context read by the advisor
// endpoints. It replaces ad-hoc per-page state with one record and an
// explicit Get/Upsert contract.
type StudentProfile struct {
	UserID  string  `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	GPA     float64 `gorm:"column:gpa;type:numeric" json:"gpa"`       // 0..4 scale
	IELTS   float64 `gorm:"column:ielts;type:numeric" json:"ielts"`   // 0..9 band
	Budget  float64 `gorm:"column:budget;type:numeric" json:"budget"` // EUR per year
	Country string  `gorm:"column:country;type:text" json:"country"`
	Field   string  `gorm:"column:field;type:text" json:"field"`

	// JSONB (free-form UI preferences: chart toggles, saved filters)
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (StudentProfile) TableName() string { return "student_profiles" }
