package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/service"
	"github.com/noah-isme/mentorlink-go-api/internal/utils"
)

const (
	reviewActionApprove = "approve"
	reviewActionReject  = "reject"
)

// AdminHandler wires the admin endpoints, including the mentor review queue.
type AdminHandler struct {
	service   service.AdminService
	approvals service.ApprovalService
	dashboard service.AdminDashboardService
	logger    zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service service.AdminService, approvals service.ApprovalService, dashboard service.AdminDashboardService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service:   service,
		approvals: approvals,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the admin routes to the provided router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/me", h.profile)
	router.Put("/me", h.update)
	router.Get("/dashboard", h.getDashboard)
	router.Get("/mentor-requests", h.listMentorRequests)
	router.Put("/mentor-requests/:id", h.reviewMentorRequest)
	router.Patch("/mentors/:id/capabilities", h.updateCapabilities)
}

func (h *AdminHandler) profile(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	admin, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err, "failed to fetch admin profile")
	}

	return utils.SendSuccess(c, "admin profile retrieved", admin)
}

func (h *AdminHandler) update(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.AdminUpdateRequest
	if hasMultipartForm(c) {
		payload.Name = formString(c, "name")
		payload.Email = formString(c, "email")
		payload.Title = formString(c, "title")
	} else if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}
	image, _ := c.FormFile("profile_image")

	admin, err := h.service.UpdateProfile(c.Context(), userID, payload, image)
	if err != nil {
		return h.handleError(c, err, "failed to update admin profile")
	}

	return utils.SendSuccess(c, "admin profile updated", admin)
}

func (h *AdminHandler) getDashboard(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	dashboard, err := h.dashboard.GetDashboard(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err, "failed to build admin dashboard")
	}

	return utils.SendSuccess(c, "admin dashboard retrieved", dashboard)
}

func (h *AdminHandler) listMentorRequests(c *fiber.Ctx) error {
	status := strings.ToLower(strings.TrimSpace(c.Query("status", "pending")))
	if status == "all" {
		status = ""
	}

	requests, err := h.approvals.ListRequests(c.Context(), status)
	if err != nil {
		if strings.Contains(err.Error(), "unknown status filter") {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list mentor requests")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list mentor requests")
	}

	return utils.SendSuccess(c, "mentor requests retrieved", requests)
}

func (h *AdminHandler) reviewMentorRequest(c *fiber.Ctx) error {
	mentorID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid mentor id")
	}

	var payload dto.MentorReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)

	var mentor dto.MentorResponse
	switch strings.ToLower(strings.TrimSpace(payload.Action)) {
	case reviewActionApprove:
		mentor, err = h.approvals.Approve(c.Context(), mentorID, actor)
	case reviewActionReject:
		mentor, err = h.approvals.Reject(c.Context(), mentorID, actor, payload.Reason)
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "action must be approve or reject")
	}
	if err != nil {
		return h.handleReviewError(c, err)
	}

	return utils.SendSuccess(c, "mentor request reviewed", mentor)
}

func (h *AdminHandler) updateCapabilities(c *fiber.Ctx) error {
	mentorID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid mentor id")
	}

	var payload dto.MentorCapabilityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	mentor, err := h.approvals.UpdateCapabilities(c.Context(), mentorID, actorFromContext(c), payload)
	if err != nil {
		return h.handleReviewError(c, err)
	}

	return utils.SendSuccess(c, "mentor capabilities updated", mentor)
}

func (h *AdminHandler) handleReviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMentorNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "mentor not found")
	case errors.Is(err, service.ErrInvalidReason):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTransitionNotAllowed):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("mentor review failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "mentor review failed")
	}
}

func (h *AdminHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrAdminNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "admin not found")
	case errors.Is(err, service.ErrDuplicateField):
		return utils.SendError(c, fiber.StatusBadRequest, "Duplicate field value entered")
	case errors.Is(err, service.ErrImageTooLarge), errors.Is(err, service.ErrImageTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
