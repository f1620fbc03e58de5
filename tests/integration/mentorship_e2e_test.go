package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/mentorlink-go-api/internal/config"
	"github.com/noah-isme/mentorlink-go-api/internal/handler"
	"github.com/noah-isme/mentorlink-go-api/internal/middleware"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
	"github.com/noah-isme/mentorlink-go-api/internal/router"
	"github.com/noah-isme/mentorlink-go-api/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Meta    json.RawMessage `json:"meta"`
}

func setupApp(t *testing.T, name string) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Mentor{},
		&models.Admin{},
		&models.MentorshipSession{},
		&models.ActivityLog{},
		&models.Notification{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	studentRepo := repository.NewStudentRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	studentService := service.NewStudentService(studentRepo, validate, nil, logger)
	mentorService := service.NewMentorService(mentorRepo, validate, nil, logger)
	adminService := service.NewAdminService(adminRepo, validate, nil, logger)
	approvalService := service.NewApprovalService(mentorRepo, activityService, nil, service.ApprovalConfig{}, logger)
	rosterService := service.NewMentorRosterService(mentorRepo, studentRepo, sessionRepo, logger)
	studentDashboardService := service.NewStudentDashboardService(studentRepo, mentorRepo, sessionRepo, nil, 0, logger)
	mentorDashboardService := service.NewMentorDashboardService(mentorRepo, sessionRepo, nil, 0, logger)
	adminDashboardService := service.NewAdminDashboardService(adminRepo, studentRepo, mentorRepo, sessionRepo, logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})

	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		StudentHandler: handler.NewStudentHandler(studentService, mentorService, studentDashboardService, logger),
		MentorHandler:  handler.NewMentorHandler(mentorService, mentorDashboardService, rosterService, logger),
		AdminHandler:   handler.NewAdminHandler(adminService, approvalService, adminDashboardService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			if id := c.Get("X-Test-User"); id != "" {
				parsed, err := strconv.ParseUint(id, 10, 64)
				if err == nil {
					c.Locals("user_id", uint(parsed))
				}
			}
			if role := c.Get("X-Test-Role"); role != "" {
				c.Locals("user_role", role)
			}
			return c.Next()
		},
		ApprovalSource: mentorRepo,
	})

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, userID uint, role string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.FormatUint(uint64(userID), 10))
	}
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func TestPendingMentorCannotAccessDashboard(t *testing.T) {
	app, db := setupApp(t, "e2e_pending")

	mentor := models.Mentor{Name: "Mona", Email: "mona@example.com", Status: models.MentorStatusPending}
	require.NoError(t, db.Create(&mentor).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/mentors/dashboard", mentor.ID, "mentor", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.False(t, env.Success)
	require.Contains(t, env.Message, "approved")
}

func TestApprovalUnlocksMentorDashboard(t *testing.T) {
	app, db := setupApp(t, "e2e_approve")

	admin := models.Admin{Name: "Root", Email: "root@example.com"}
	require.NoError(t, db.Create(&admin).Error)
	mentor := models.Mentor{Name: "Nils", Email: "nils@example.com", Status: models.MentorStatusPending}
	require.NoError(t, db.Create(&mentor).Error)

	// First contact with the gate fails.
	resp := doJSON(t, app, http.MethodGet, "/api/v1/mentors/dashboard", mentor.ID, "mentor", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin approves the request.
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admins/mentor-requests/"+strconv.FormatUint(uint64(mentor.ID), 10),
		admin.ID, "admin", map[string]string{"action": "approve"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reviewed struct {
		Status     string `json:"status"`
		ApprovedBy *uint  `json:"approved_by"`
	}
	env := decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &reviewed))
	require.Equal(t, "approved", reviewed.Status)
	require.NotNil(t, reviewed.ApprovedBy)
	require.Equal(t, admin.ID, *reviewed.ApprovedBy)

	// The gate now opens and the envelope carries the approval annotation.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/mentors/dashboard", mentor.ID, "mentor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env = decodeEnvelope(t, resp)
	require.True(t, env.Success)
	require.Contains(t, string(env.Meta), `"status":"approved"`)
}

func TestRejectionRequiresReasonAndLocksReview(t *testing.T) {
	app, db := setupApp(t, "e2e_reject")

	admin := models.Admin{Name: "Root", Email: "root2@example.com"}
	require.NoError(t, db.Create(&admin).Error)
	mentor := models.Mentor{Name: "Omar", Email: "omar@example.com", Status: models.MentorStatusPending}
	require.NoError(t, db.Create(&mentor).Error)

	path := "/api/v1/admins/mentor-requests/" + strconv.FormatUint(uint64(mentor.ID), 10)

	resp := doJSON(t, app, http.MethodPut, path, admin.ID, "admin", map[string]string{"action": "reject"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, path, admin.ID, "admin", map[string]string{"action": "reject", "reason": "incomplete profile"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A second review on the same mentor conflicts.
	resp = doJSON(t, app, http.MethodPut, path, admin.ID, "admin", map[string]string{"action": "approve"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStudentProfileSubjectsSplit(t *testing.T) {
	app, db := setupApp(t, "e2e_subjects")

	student := models.Student{Name: "Pia", Email: "pia@example.com"}
	require.NoError(t, db.Create(&student).Error)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/students/me", student.ID, "student",
		map[string]string{"preferred_subjects": "math, physics ,chemistry"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		PreferredSubjects []string `json:"preferred_subjects"`
	}
	env := decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	require.Equal(t, []string{"math", "physics", "chemistry"}, profile.PreferredSubjects)
}

func TestStudentDuplicateEmailConflict(t *testing.T) {
	app, db := setupApp(t, "e2e_duplicate")

	first := models.Student{Name: "Quinn", Email: "quinn@example.com"}
	second := models.Student{Name: "Rae", Email: "rae@example.com"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/students/me", second.ID, "student",
		map[string]string{"email": "quinn@example.com"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.Equal(t, "Duplicate field value entered", env.Message)
}

func TestMentorCannotChangeOwnStatus(t *testing.T) {
	app, db := setupApp(t, "e2e_policy")

	mentor := models.Mentor{Name: "Sol", Email: "sol@example.com", Status: models.MentorStatusPending}
	require.NoError(t, db.Create(&mentor).Error)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/mentors/me", mentor.ID, "mentor",
		map[string]interface{}{"status": "approved", "can_impersonate": true, "bio": "10 years of tutoring"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Status         string `json:"status"`
		CanImpersonate bool   `json:"can_impersonate"`
		Bio            string `json:"bio"`
	}
	env := decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	require.Equal(t, "pending", profile.Status)
	require.False(t, profile.CanImpersonate)
	require.Equal(t, "10 years of tutoring", profile.Bio)
}

func TestStudentsSeeOnlyApprovedMentors(t *testing.T) {
	app, db := setupApp(t, "e2e_public")

	student := models.Student{Name: "Tara", Email: "tara@example.com"}
	require.NoError(t, db.Create(&student).Error)

	approvedMentor := models.Mentor{Name: "Uri", Email: "uri@example.com", Status: models.MentorStatusApproved}
	pendingMentor := models.Mentor{Name: "Val", Email: "val@example.com", Status: models.MentorStatusPending}
	require.NoError(t, db.Create(&approvedMentor).Error)
	require.NoError(t, db.Create(&pendingMentor).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/students/mentors", student.ID, "student", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mentors []struct {
		Name string `json:"name"`
	}
	env := decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &mentors))
	require.Len(t, mentors, 1)
	require.Equal(t, "Uri", mentors[0].Name)
}

func TestRoleGroupsRejectWrongRole(t *testing.T) {
	app, db := setupApp(t, "e2e_roles")

	student := models.Student{Name: "Wim", Email: "wim@example.com"}
	require.NoError(t, db.Create(&student).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/admins/dashboard", student.ID, "student", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.False(t, env.Success)
	require.True(t, strings.Contains(env.Message, "permissions"))
}
