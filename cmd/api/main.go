package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/config"
	"github.com/noah-isme/mentorlink-go-api/internal/database"
	"github.com/noah-isme/mentorlink-go-api/internal/handler"
	"github.com/noah-isme/mentorlink-go-api/internal/middleware"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
	"github.com/noah-isme/mentorlink-go-api/internal/router"
	"github.com/noah-isme/mentorlink-go-api/internal/service"
	cloud "github.com/noah-isme/mentorlink-go-api/pkg/cloudinary"
)

const notificationKeepAlive = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Mentor{},
		&models.Admin{},
		&models.MentorshipSession{},
		&models.ActivityLog{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	images := service.NewProfileImageService(uploader, cfg.DefaultAvatarURL, 5, logger)
	activityService := service.NewActivityService(activityRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, "mentorlink", natsConn, validate, logger)

	studentService := service.NewStudentService(studentRepo, validate, images, logger)
	mentorService := service.NewMentorService(mentorRepo, validate, images, logger)
	adminService := service.NewAdminService(adminRepo, validate, images, logger)
	approvalService := service.NewApprovalService(mentorRepo, activityService, notificationService,
		service.ApprovalConfig{AllowReReview: cfg.ApprovalAllowReReview}, logger)
	rosterService := service.NewMentorRosterService(mentorRepo, studentRepo, sessionRepo, logger)
	studentDashboardService := service.NewStudentDashboardService(studentRepo, mentorRepo, sessionRepo, redisClient, cfg.DashboardCacheTTL, logger)
	mentorDashboardService := service.NewMentorDashboardService(mentorRepo, sessionRepo, redisClient, cfg.DashboardCacheTTL, logger)
	adminDashboardService := service.NewAdminDashboardService(adminRepo, studentRepo, mentorRepo, sessionRepo, logger)
	seedService := service.NewSeedService(studentRepo, mentorRepo, adminRepo, sessionRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	studentHandler := handler.NewStudentHandler(studentService, mentorService, studentDashboardService, logger)
	mentorHandler := handler.NewMentorHandler(mentorService, mentorDashboardService, rosterService, logger)
	adminHandler := handler.NewAdminHandler(adminService, approvalService, adminDashboardService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger, notificationKeepAlive)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	serviceCtx, cancelServices := context.WithCancel(context.Background())
	defer cancelServices()
	notificationService.Start(serviceCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:      studentHandler,
		MentorHandler:       mentorHandler,
		AdminHandler:        adminHandler,
		NotificationHandler: notificationHandler,
		SeedHandler:         seedHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		ApprovalSource:      mentorRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
