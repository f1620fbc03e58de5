package models

import "time"

// Mentorship session statuses.
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// MentorshipSession links a mentor and a student for a scheduled meeting.
// Sessions feed the dashboard aggregates.
type MentorshipSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MentorID    uint      `gorm:"index;not null" json:"mentor_id"`
	StudentID   uint      `gorm:"index;not null" json:"student_id"`
	Subject     string    `gorm:"size:255;not null" json:"subject"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `gorm:"size:16;not null;default:scheduled" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Mentor  Mentor  `gorm:"foreignKey:MentorID" json:"-"`
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}
