package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/service"
	"github.com/noah-isme/mentorlink-go-api/internal/utils"
)

// MentorHandler wires the mentor self-service endpoints. Profile routes are
// open to any authenticated mentor; dashboard and student routes sit behind
// the approval gate and are registered separately.
type MentorHandler struct {
	service   service.MentorService
	dashboard service.MentorDashboardService
	sessions  service.MentorRosterService
	logger    zerolog.Logger
}

// NewMentorHandler constructs the handler.
func NewMentorHandler(service service.MentorService, dashboard service.MentorDashboardService, sessions service.MentorRosterService, logger zerolog.Logger) *MentorHandler {
	return &MentorHandler{
		service:   service,
		dashboard: dashboard,
		sessions:  sessions,
		logger:    logger.With().Str("component", "mentor_handler").Logger(),
	}
}

// Register attaches the ungated mentor routes.
func (h *MentorHandler) Register(router fiber.Router) {
	router.Get("/me", h.profile)
	router.Put("/me", h.update)
}

// RegisterGated attaches the routes that require an approved mentor.
func (h *MentorHandler) RegisterGated(router fiber.Router) {
	router.Get("/dashboard", h.getDashboard)
	router.Get("/students", h.listStudents)
}

func (h *MentorHandler) profile(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	mentor, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err, "failed to fetch mentor profile")
	}

	return utils.SendSuccessWithMeta(c, "mentor profile retrieved", mentor, approvalMeta(c))
}

func (h *MentorHandler) update(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	payload, err := h.parsePayload(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	image, _ := c.FormFile("profile_image")

	mentor, err := h.service.UpdateProfile(c.Context(), userID, payload, image)
	if err != nil {
		return h.handleError(c, err, "failed to update mentor profile")
	}

	return utils.SendSuccessWithMeta(c, "mentor profile updated", mentor, approvalMeta(c))
}

func (h *MentorHandler) parsePayload(c *fiber.Ctx) (dto.MentorUpdateRequest, error) {
	var payload dto.MentorUpdateRequest

	if !hasMultipartForm(c) {
		if len(c.Body()) == 0 {
			return payload, nil
		}
		if err := c.BodyParser(&payload); err != nil {
			return payload, errors.New("invalid payload")
		}
		return payload, nil
	}

	payload.Name = formString(c, "name")
	payload.Email = formString(c, "email")
	payload.Bio = formString(c, "bio")
	payload.Expertise = formString(c, "expertise")

	years, err := formInt(c, "years_experience")
	if err != nil {
		return payload, err
	}
	payload.YearsExperience = years

	address, err := formJSONMap(c, "address")
	if err != nil {
		return payload, err
	}
	payload.Address = address

	return payload, nil
}

func (h *MentorHandler) getDashboard(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	dashboard, err := h.dashboard.GetDashboard(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err, "failed to build mentor dashboard")
	}

	return utils.SendSuccessWithMeta(c, "mentor dashboard retrieved", dashboard, approvalMeta(c))
}

func (h *MentorHandler) listStudents(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	students, err := h.sessions.ListStudents(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err, "failed to list mentored students")
	}

	return utils.SendSuccessWithMeta(c, "students retrieved", students, approvalMeta(c))
}

func (h *MentorHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrMentorNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "mentor not found")
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
