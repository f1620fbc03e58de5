package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/observability"
	"github.com/noah-isme/mentorlink-go-api/internal/utils"
)

// ApprovalStatusSource reads the current approval status of a mentor.
// Satisfied by repository.MentorRepository.
type ApprovalStatusSource interface {
	StatusByID(ctx context.Context, id uint) (models.MentorStatus, error)
}

// Locals keys populated by AddApprovalStatus.
const (
	LocalApprovalStatus     = "approval_status"
	LocalApprovalIsApproved = "approval_is_approved"
)

// AddApprovalStatus annotates every mentor request with the mentor's current
// approval status. It is an observability aid, not an access decision: the
// request proceeds regardless of status.
func AddApprovalStatus(source ApprovalStatusSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mentorID := userIDLocal(c)
		if mentorID == 0 {
			return c.Next()
		}

		status, err := source.StatusByID(c.Context(), mentorID)
		if err != nil {
			return c.Next()
		}

		c.Locals(LocalApprovalStatus, string(status))
		c.Locals(LocalApprovalIsApproved, status == models.MentorStatusApproved)

		return c.Next()
	}
}

// RequireMentorApproval restricts a route to approved mentors. It performs a
// single status read and has no side effects of its own.
func RequireMentorApproval(source ApprovalStatusSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if normalizeRoleValue(c.Locals("user_role")) != RoleMentor {
			observability.ApprovalGateRejected().WithLabelValues("role").Inc()
			return utils.SendError(c, fiber.StatusForbidden, "mentor role required")
		}

		mentorID := userIDLocal(c)
		if mentorID == 0 {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		status, err := source.StatusByID(c.Context(), mentorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusNotFound, "mentor not found")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to read approval status")
		}

		if status != models.MentorStatusApproved {
			observability.ApprovalGateRejected().WithLabelValues(string(status)).Inc()
			return utils.SendError(c, fiber.StatusForbidden, "mentor account must be approved to access this resource")
		}

		return c.Next()
	}
}

func userIDLocal(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		switch id := v.(type) {
		case uint:
			return id
		case int:
			if id < 0 {
				return 0
			}
			return uint(id)
		}
	}
	return 0
}
