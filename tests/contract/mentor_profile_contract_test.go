package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/handler"
	"github.com/noah-isme/mentorlink-go-api/internal/middleware"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

type stubMentorService struct {
	profile dto.MentorResponse
}

func (s stubMentorService) GetProfile(context.Context, uint) (dto.MentorResponse, error) {
	return s.profile, nil
}

func (s stubMentorService) UpdateProfile(context.Context, uint, dto.MentorUpdateRequest, *multipart.FileHeader) (dto.MentorResponse, error) {
	return s.profile, nil
}

func (s stubMentorService) ListApproved(context.Context) ([]dto.MentorPublicResponse, error) {
	return nil, nil
}

type stubStatusSource struct {
	status models.MentorStatus
}

func (s stubStatusSource) StatusByID(context.Context, uint) (models.MentorStatus, error) {
	return s.status, nil
}

func TestMentorProfileEnvelopeContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "mentor_profile.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	profile := dto.MentorResponse{
		ID:              3,
		Name:            "Pending Mentor",
		Email:           "pending@example.com",
		Bio:             "math tutor",
		Expertise:       []string{"math"},
		YearsExperience: 2,
		Status:          "pending",
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	mentorHandler := handler.NewMentorHandler(stubMentorService{profile: profile}, nil, nil, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/mentors", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(3))
		c.Locals("user_role", "mentor")
		return c.Next()
	}, middleware.AddApprovalStatus(stubStatusSource{status: models.MentorStatusPending}))
	mentorHandler.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mentors/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))

	envelope, ok := payload.(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, envelope, "meta")
}
