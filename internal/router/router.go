package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/mentorlink-go-api/internal/config"
	"github.com/noah-isme/mentorlink-go-api/internal/handler"
	"github.com/noah-isme/mentorlink-go-api/internal/middleware"
	"github.com/noah-isme/mentorlink-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler      *handler.StudentHandler
	MentorHandler       *handler.MentorHandler
	AdminHandler        *handler.AdminHandler
	NotificationHandler *handler.NotificationHandler
	SeedHandler         *handler.SeedHandler
	JWTMiddleware       fiber.Handler
	ApprovalSource      middleware.ApprovalStatusSource
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware, middleware.RequireRole(middleware.RoleStudent))
		deps.StudentHandler.Register(students)
	}

	if deps.MentorHandler != nil {
		mentors := api.Group("/mentors",
			jwtMiddleware,
			middleware.RequireRole(middleware.RoleMentor),
			middleware.AddApprovalStatus(deps.ApprovalSource),
		)
		deps.MentorHandler.Register(mentors)

		gated := mentors.Group("", middleware.RequireMentorApproval(deps.ApprovalSource))
		deps.MentorHandler.RegisterGated(gated)
	}

	if deps.AdminHandler != nil {
		admins := api.Group("/admins", jwtMiddleware, middleware.RequireRole(middleware.RoleAdmin))
		deps.AdminHandler.Register(admins)
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.SeedHandler != nil {
		dev := api.Group("/dev")
		deps.SeedHandler.Register(dev)
	}
}
