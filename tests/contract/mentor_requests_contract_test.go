package contract_test

import (
	"context"
	"encoding/json"
	"io"
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
	"github.com/noah-isme/mentorlink-go-api/internal/service"
)

type stubApprovalService struct {
	requests []dto.MentorRequestResponse
}

func (s stubApprovalService) Approve(context.Context, uint, service.ActivityActor) (dto.MentorResponse, error) {
	return dto.MentorResponse{}, nil
}

func (s stubApprovalService) Reject(context.Context, uint, service.ActivityActor, string) (dto.MentorResponse, error) {
	return dto.MentorResponse{}, nil
}

func (s stubApprovalService) IsApproved(context.Context, uint) (bool, error) {
	return false, nil
}

func (s stubApprovalService) ListRequests(context.Context, string) ([]dto.MentorRequestResponse, error) {
	return s.requests, nil
}

func (s stubApprovalService) UpdateCapabilities(context.Context, uint, service.ActivityActor, dto.MentorCapabilityRequest) (dto.MentorResponse, error) {
	return dto.MentorResponse{}, nil
}

func TestMentorRequestsContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "mentor_requests.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	approvedAt := time.Now().UTC()
	adminID := uint(7)
	requests := []dto.MentorRequestResponse{
		{
			ID:              1,
			Name:            "Pending Mentor",
			Email:           "pending@example.com",
			Expertise:       []string{"math"},
			YearsExperience: 4,
			Status:          "pending",
			CreatedAt:       time.Now().UTC(),
		},
		{
			ID:         2,
			Name:       "Approved Mentor",
			Email:      "approved@example.com",
			Status:     "approved",
			ApprovedAt: &approvedAt,
			ApprovedBy: &adminID,
			CreatedAt:  time.Now().UTC(),
		},
	}

	adminHandler := handler.NewAdminHandler(nil, stubApprovalService{requests: requests}, nil, zerolog.Nop())

	app := fiber.New()
	adminHandler.Register(app.Group("/api/v1/admins"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admins/mentor-requests", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
