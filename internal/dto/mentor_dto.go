package dto

import (
	"time"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

// MentorResponse serializes a mentor's own view of their record.
type MentorResponse struct {
	ID              uint                   `json:"id"`
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Bio             string                 `json:"bio"`
	Expertise       []string               `json:"expertise"`
	YearsExperience int                    `json:"years_experience"`
	ProfileImageURL string                 `json:"profile_image_url"`
	Address         map[string]interface{} `json:"address"`
	Status          string                 `json:"status"`
	ApprovedAt      *time.Time             `json:"approved_at,omitempty"`
	ApprovedBy      *uint                  `json:"approved_by,omitempty"`
	RejectedAt      *time.Time             `json:"rejected_at,omitempty"`
	RejectionReason *string                `json:"rejection_reason,omitempty"`
	CanImpersonate  bool                   `json:"can_impersonate"`
	Permissions     map[string]interface{} `json:"permissions"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// MentorPublicResponse is the student-facing view of an approved mentor.
type MentorPublicResponse struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Bio             string   `json:"bio"`
	Expertise       []string `json:"expertise"`
	YearsExperience int      `json:"years_experience"`
	ProfileImageURL string   `json:"profile_image_url"`
}

// MentorUpdateRequest captures the mentor self-service profile patch.
// Fields outside the mentor allow-list are ignored, not rejected.
type MentorUpdateRequest struct {
	Name            *string                `json:"name" validate:"omitempty,min=1"`
	Email           *string                `json:"email" validate:"omitempty,email"`
	Bio             *string                `json:"bio" validate:"omitempty,max=4000"`
	Expertise       *string                `json:"expertise"`
	YearsExperience *int                   `json:"years_experience" validate:"omitempty,gte=0,lte=80"`
	Address         map[string]interface{} `json:"address"`

	// Present so that a patch naming them is silently dropped by the field
	// policy rather than rejected by the body parser.
	Status         *string                `json:"status"`
	CanImpersonate *bool                  `json:"can_impersonate"`
	Permissions    map[string]interface{} `json:"permissions"`
}

// MentorReviewRequest is the admin decision payload for a mentor request.
type MentorReviewRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

// MentorCapabilityRequest updates admin-controlled capability flags.
type MentorCapabilityRequest struct {
	CanImpersonate *bool                  `json:"can_impersonate"`
	Permissions    map[string]interface{} `json:"permissions"`
}

// MentorDashboardResponse aggregates a mentor's activity.
type MentorDashboardResponse struct {
	Mentor           MentorResponse    `json:"mentor"`
	Summary          MentorSummary     `json:"summary"`
	UpcomingSessions []SessionResponse `json:"upcoming_sessions"`
	RecentSessions   []SessionResponse `json:"recent_sessions"`
}

// MentorSummary captures aggregate counters for the mentor dashboard.
type MentorSummary struct {
	ActiveStudents    int64 `json:"active_students"`
	UpcomingSessions  int64 `json:"upcoming_sessions"`
	CompletedSessions int64 `json:"completed_sessions"`
}

// SessionResponse serializes a mentorship session.
type SessionResponse struct {
	ID          uint      `json:"id"`
	MentorID    uint      `json:"mentor_id"`
	StudentID   uint      `json:"student_id"`
	Subject     string    `json:"subject"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
}

// NewMentorResponse converts a mentor model into its DTO.
func NewMentorResponse(mentor models.Mentor) MentorResponse {
	return MentorResponse{
		ID:              mentor.ID,
		Name:            mentor.Name,
		Email:           mentor.Email,
		Bio:             mentor.Bio,
		Expertise:       []string(mentor.Expertise),
		YearsExperience: mentor.YearsExperience,
		ProfileImageURL: mentor.ProfileImageURL,
		Address:         map[string]interface{}(mentor.Address),
		Status:          string(mentor.Status),
		ApprovedAt:      mentor.ApprovedAt,
		ApprovedBy:      mentor.ApprovedBy,
		RejectedAt:      mentor.RejectedAt,
		RejectionReason: mentor.RejectionReason,
		CanImpersonate:  mentor.CanImpersonate,
		Permissions:     map[string]interface{}(mentor.Permissions),
		CreatedAt:       mentor.CreatedAt,
		UpdatedAt:       mentor.UpdatedAt,
	}
}

// NewMentorPublicResponse converts a mentor into the student-facing view.
func NewMentorPublicResponse(mentor models.Mentor) MentorPublicResponse {
	return MentorPublicResponse{
		ID:              mentor.ID,
		Name:            mentor.Name,
		Bio:             mentor.Bio,
		Expertise:       []string(mentor.Expertise),
		YearsExperience: mentor.YearsExperience,
		ProfileImageURL: mentor.ProfileImageURL,
	}
}

// NewSessionResponse converts a session model into its DTO.
func NewSessionResponse(session models.MentorshipSession) SessionResponse {
	return SessionResponse{
		ID:          session.ID,
		MentorID:    session.MentorID,
		StudentID:   session.StudentID,
		Subject:     session.Subject,
		ScheduledAt: session.ScheduledAt,
		Status:      session.Status,
	}
}

// NewSessionResponseSlice converts session models into DTOs.
func NewSessionResponseSlice(sessions []models.MentorshipSession) []SessionResponse {
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, NewSessionResponse(session))
	}
	return responses
}
