package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student represents a learner looking for mentorship.
type Student struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	Name              string                      `gorm:"size:255;not null" json:"name"`
	Email             string                      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	GradeLevel        string                      `gorm:"size:64" json:"grade_level"`
	Bio               string                      `gorm:"type:text" json:"bio"`
	PreferredSubjects datatypes.JSONSlice[string] `gorm:"type:json" json:"preferred_subjects"`
	ProfileImageURL   string                      `gorm:"size:512" json:"profile_image_url"`
	Address           datatypes.JSONMap           `gorm:"type:json" json:"address"`
	EmergencyContact  datatypes.JSONMap           `gorm:"type:json" json:"emergency_contact"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}
