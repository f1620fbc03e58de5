package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/service"
	"github.com/noah-isme/mentorlink-go-api/internal/utils"
)

// StudentHandler wires the student self-service endpoints.
type StudentHandler struct {
	service   service.StudentService
	mentors   service.MentorService
	dashboard service.StudentDashboardService
	logger    zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, mentors service.MentorService, dashboard service.StudentDashboardService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service:   service,
		mentors:   mentors,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student routes to the provided router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/me", h.profile)
	router.Put("/me", h.update)
	router.Get("/dashboard", h.getDashboard)
	router.Get("/mentors", h.listMentors)
}

func (h *StudentHandler) profile(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	student, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err, "failed to fetch student profile")
	}

	return utils.SendSuccess(c, "student profile retrieved", student)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	payload, err := h.parsePayload(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	image, _ := c.FormFile("profile_image")

	student, err := h.service.UpdateProfile(c.Context(), userID, payload, image)
	if err != nil {
		return h.handleError(c, err, "failed to update student profile")
	}

	return utils.SendSuccess(c, "student profile updated", student)
}

// parsePayload accepts either a JSON body or a multipart form so the
// profile image can ride along with field updates.
func (h *StudentHandler) parsePayload(c *fiber.Ctx) (dto.StudentUpdateRequest, error) {
	var payload dto.StudentUpdateRequest

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
	payload.GradeLevel = formString(c, "grade_level")
	payload.Bio = formString(c, "bio")
	payload.PreferredSubjects = formString(c, "preferred_subjects")

	address, err := formJSONMap(c, "address")
	if err != nil {
		return payload, err
	}
	payload.Address = address

	emergency, err := formJSONMap(c, "emergency_contact")
	if err != nil {
		return payload, err
	}
	payload.EmergencyContact = emergency

	return payload, nil
}

func (h *StudentHandler) getDashboard(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	dashboard, err := h.dashboard.GetDashboard(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err, "failed to build student dashboard")
	}

	return utils.SendSuccess(c, "student dashboard retrieved", dashboard)
}

func (h *StudentHandler) listMentors(c *fiber.Ctx) error {
	mentors, err := h.mentors.ListApproved(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list approved mentors")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list mentors")
	}

	return utils.SendSuccess(c, "mentors retrieved", mentors)
}

func (h *StudentHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
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
