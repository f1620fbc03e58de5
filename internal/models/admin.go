package models

import "time"

// Admin represents a platform administrator reviewing mentor requests.
type Admin struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Title           string    `gorm:"size:128" json:"title"`
	ProfileImageURL string    `gorm:"size:512" json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
