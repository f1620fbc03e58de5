package models

import (
	"time"

	"gorm.io/datatypes"
)

// MentorStatus enumerates the approval lifecycle of a mentor account.
type MentorStatus string

// Mentor approval statuses.
const (
	MentorStatusPending  MentorStatus = "pending"
	MentorStatusApproved MentorStatus = "approved"
	MentorStatusRejected MentorStatus = "rejected"
)

// Mentor represents a mentor account. Approval columns are only written
// through an ApprovalDecision so that the timestamp/reason companions always
// match the status.
type Mentor struct {
	ID              uint                       `gorm:"primaryKey" json:"id"`
	Name            string                     `gorm:"size:255;not null" json:"name"`
	Email           string                     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Bio             string                     `gorm:"type:text" json:"bio"`
	Expertise       datatypes.JSONSlice[string] `gorm:"type:json" json:"expertise"`
	YearsExperience int                        `json:"years_experience"`
	ProfileImageURL string                     `gorm:"size:512" json:"profile_image_url"`
	Address         datatypes.JSONMap          `gorm:"type:json" json:"address"`

	Status          MentorStatus `gorm:"size:16;not null;default:pending" json:"status"`
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`
	ApprovedBy      *uint        `json:"approved_by,omitempty"`
	RejectedAt      *time.Time   `json:"rejected_at,omitempty"`
	RejectionReason *string      `gorm:"type:text" json:"rejection_reason,omitempty"`

	CanImpersonate bool              `gorm:"not null;default:false" json:"can_impersonate"`
	Permissions    datatypes.JSONMap `gorm:"type:json" json:"permissions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsApproved reports whether the mentor may use mentor-only features.
func (m Mentor) IsApproved() bool {
	return m.Status == MentorStatusApproved
}

// ApprovalDecision is a tagged representation of the approval state. The
// constructors below are the only way to build one, so a decision can never
// carry a rejection reason together with an approval stamp.
type ApprovalDecision struct {
	status MentorStatus
	at     time.Time
	by     uint
	reason string
}

// PendingDecision resets a mentor to the pending state.
func PendingDecision() ApprovalDecision {
	return ApprovalDecision{status: MentorStatusPending}
}

// ApprovedDecision records an approval by the given admin.
func ApprovedDecision(at time.Time, adminID uint) ApprovalDecision {
	return ApprovalDecision{status: MentorStatusApproved, at: at, by: adminID}
}

// RejectedDecision records a rejection with the given reason.
func RejectedDecision(at time.Time, reason string) ApprovalDecision {
	return ApprovalDecision{status: MentorStatusRejected, at: at, reason: reason}
}

// Status returns the status the decision resolves to.
func (d ApprovalDecision) Status() MentorStatus {
	return d.status
}

// Updates returns the column set a decision writes. Fields belonging to the
// other branch are cleared in the same write, keeping the record consistent
// under last-write-wins.
func (d ApprovalDecision) Updates() map[string]interface{} {
	updates := map[string]interface{}{
		"status":           d.status,
		"approved_at":      nil,
		"approved_by":      nil,
		"rejected_at":      nil,
		"rejection_reason": nil,
	}

	switch d.status {
	case MentorStatusApproved:
		updates["approved_at"] = d.at
		updates["approved_by"] = d.by
	case MentorStatusRejected:
		updates["rejected_at"] = d.at
		updates["rejection_reason"] = d.reason
	}

	return updates
}

// Apply mutates the mentor in memory the same way Updates writes to the store.
func (d ApprovalDecision) Apply(m *Mentor) {
	m.Status = d.status
	m.ApprovedAt = nil
	m.ApprovedBy = nil
	m.RejectedAt = nil
	m.RejectionReason = nil

	switch d.status {
	case MentorStatusApproved:
		at := d.at
		by := d.by
		m.ApprovedAt = &at
		m.ApprovedBy = &by
	case MentorStatusRejected:
		at := d.at
		reason := d.reason
		m.RejectedAt = &at
		m.RejectionReason = &reason
	}
}
