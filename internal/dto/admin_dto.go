package dto

import (
	"time"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

// AdminResponse serializes an admin's own record.
type AdminResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Title           string    `json:"title"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AdminUpdateRequest captures the admin self-service profile patch.
type AdminUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	Title *string `json:"title" validate:"omitempty,max=128"`
}

// MentorRequestResponse is the admin review-queue view of a mentor record.
type MentorRequestResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Expertise       []string   `json:"expertise"`
	YearsExperience int        `json:"years_experience"`
	Status          string     `json:"status"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AdminDashboardResponse aggregates platform-wide counters.
type AdminDashboardResponse struct {
	Admin           AdminResponse           `json:"admin"`
	Totals          AdminTotals             `json:"totals"`
	PendingRequests []MentorRequestResponse `json:"pending_requests"`
}

// AdminTotals captures the headline counters on the admin dashboard.
type AdminTotals struct {
	Students        int64 `json:"students"`
	Mentors         int64 `json:"mentors"`
	ApprovedMentors int64 `json:"approved_mentors"`
	PendingMentors  int64 `json:"pending_mentors"`
	RejectedMentors int64 `json:"rejected_mentors"`
	Sessions        int64 `json:"sessions"`
}

// NewAdminResponse converts an admin model into its DTO.
func NewAdminResponse(admin models.Admin) AdminResponse {
	return AdminResponse{
		ID:              admin.ID,
		Name:            admin.Name,
		Email:           admin.Email,
		Title:           admin.Title,
		ProfileImageURL: admin.ProfileImageURL,
		CreatedAt:       admin.CreatedAt,
		UpdatedAt:       admin.UpdatedAt,
	}
}

// NewMentorRequestResponse converts a mentor into the review-queue DTO.
func NewMentorRequestResponse(mentor models.Mentor) MentorRequestResponse {
	return MentorRequestResponse{
		ID:              mentor.ID,
		Name:            mentor.Name,
		Email:           mentor.Email,
		Expertise:       []string(mentor.Expertise),
		YearsExperience: mentor.YearsExperience,
		Status:          string(mentor.Status),
		ApprovedAt:      mentor.ApprovedAt,
		ApprovedBy:      mentor.ApprovedBy,
		RejectedAt:      mentor.RejectedAt,
		RejectionReason: mentor.RejectionReason,
		CreatedAt:       mentor.CreatedAt,
	}
}

// NewMentorRequestResponseSlice converts mentor models into review-queue DTOs.
func NewMentorRequestResponseSlice(mentors []models.Mentor) []MentorRequestResponse {
	responses := make([]MentorRequestResponse, 0, len(mentors))
	for _, mentor := range mentors {
		responses = append(responses, NewMentorRequestResponse(mentor))
	}
	return responses
}
