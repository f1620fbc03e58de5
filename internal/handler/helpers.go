package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/middleware"
	"github.com/noah-isme/mentorlink-go-api/internal/service"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// hasMultipartForm reports whether the request carries a multipart body.
func hasMultipartForm(c *fiber.Ctx) bool {
	form, err := c.MultipartForm()
	return err == nil && form != nil
}

// formString returns a pointer to the form value when the key is present,
// so absent fields stay nil and are skipped by the patch merge.
func formString(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

// formInt parses an optional integer form value.
func formInt(c *fiber.Ctx, key string) (*int, error) {
	raw := formString(c, key)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &parsed, nil
}

// formJSONMap decodes a form field carrying a JSON object, for nested
// profile sections submitted alongside a file upload.
func formJSONMap(c *fiber.Ctx, key string) (map[string]interface{}, error) {
	raw := formString(c, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return out, nil
}

func userIDFromContext(c *fiber.Ctx) (uint, error) {
	value := c.Locals("user_id")
	if value == nil {
		return 0, fmt.Errorf("missing user context")
	}

	switch v := value.(type) {
	case uint:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid user context")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid user context")
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("invalid user context")
	}
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func actorFromContext(c *fiber.Ctx) service.ActivityActor {
	id, _ := userIDFromContext(c)
	return service.ActivityActor{
		ID:   id,
		Role: userRoleFromContext(c),
	}
}

// approvalMeta exposes the approval annotation populated by the
// AddApprovalStatus middleware for inclusion in the response envelope.
func approvalMeta(c *fiber.Ctx) interface{} {
	status, ok := c.Locals(middleware.LocalApprovalStatus).(string)
	if !ok {
		return nil
	}
	isApproved, _ := c.Locals(middleware.LocalApprovalIsApproved).(bool)

	return fiber.Map{
		"approval": fiber.Map{
			"status":      status,
			"is_approved": isApproved,
		},
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationMessage flattens validator errors into one message per field.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s failed validation on %s", fieldError.Field(), fieldError.Tag()))
	}
	return strings.Join(messages, "; ")
}
