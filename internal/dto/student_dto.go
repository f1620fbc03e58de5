package dto

import (
	"time"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

// StudentResponse serializes a student's own record.
type StudentResponse struct {
	ID                uint                   `json:"id"`
	Name              string                 `json:"name"`
	Email             string                 `json:"email"`
	GradeLevel        string                 `json:"grade_level"`
	Bio               string                 `json:"bio"`
	PreferredSubjects []string               `json:"preferred_subjects"`
	ProfileImageURL   string                 `json:"profile_image_url"`
	Address           map[string]interface{} `json:"address"`
	EmergencyContact  map[string]interface{} `json:"emergency_contact"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// StudentUpdateRequest captures the student self-service profile patch.
// PreferredSubjects accepts a comma separated string which is split and
// trimmed before storage.
type StudentUpdateRequest struct {
	Name              *string                `json:"name" validate:"omitempty,min=1"`
	Email             *string                `json:"email" validate:"omitempty,email"`
	GradeLevel        *string                `json:"grade_level" validate:"omitempty,max=64"`
	Bio               *string                `json:"bio" validate:"omitempty,max=4000"`
	PreferredSubjects *string                `json:"preferred_subjects"`
	Address           map[string]interface{} `json:"address"`
	EmergencyContact  map[string]interface{} `json:"emergency_contact"`
}

// StudentPublicResponse is the mentor-facing view of a mentored student.
type StudentPublicResponse struct {
	ID                uint     `json:"id"`
	Name              string   `json:"name"`
	GradeLevel        string   `json:"grade_level"`
	PreferredSubjects []string `json:"preferred_subjects"`
	ProfileImageURL   string   `json:"profile_image_url"`
}

// StudentDashboardResponse aggregates a student's mentorship activity.
type StudentDashboardResponse struct {
	Student          StudentResponse   `json:"student"`
	Summary          StudentSummary    `json:"summary"`
	UpcomingSessions []SessionResponse `json:"upcoming_sessions"`
	RecentSessions   []SessionResponse `json:"recent_sessions"`
}

// StudentSummary captures aggregate counters for the student dashboard.
type StudentSummary struct {
	AvailableMentors  int64 `json:"available_mentors"`
	UpcomingSessions  int64 `json:"upcoming_sessions"`
	CompletedSessions int64 `json:"completed_sessions"`
}

// NewStudentPublicResponse converts a student model into its public DTO.
func NewStudentPublicResponse(student models.Student) StudentPublicResponse {
	return StudentPublicResponse{
		ID:                student.ID,
		Name:              student.Name,
		GradeLevel:        student.GradeLevel,
		PreferredSubjects: []string(student.PreferredSubjects),
		ProfileImageURL:   student.ProfileImageURL,
	}
}

// NewStudentPublicResponseSlice converts a batch of students.
func NewStudentPublicResponseSlice(students []models.Student) []StudentPublicResponse {
	responses := make([]StudentPublicResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentPublicResponse(student))
	}
	return responses
}

// NewStudentResponse converts a student model into its DTO.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:                student.ID,
		Name:              student.Name,
		Email:             student.Email,
		GradeLevel:        student.GradeLevel,
		Bio:               student.Bio,
		PreferredSubjects: []string(student.PreferredSubjects),
		ProfileImageURL:   student.ProfileImageURL,
		Address:           map[string]interface{}(student.Address),
		EmergencyContact:  map[string]interface{}(student.EmergencyContact),
		CreatedAt:         student.CreatedAt,
		UpdatedAt:         student.UpdatedAt,
	}
}
