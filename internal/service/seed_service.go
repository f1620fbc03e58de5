package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedRequest groups the account fixtures to create in one call.
type SeedRequest struct {
	Students []models.Student           `json:"students"`
	Mentors  []models.Mentor            `json:"mentors"`
	Admins   []models.Admin             `json:"admins"`
	Sessions []models.MentorshipSession `json:"sessions"`
}

// SeedResult reports how many records of each kind were created.
type SeedResult struct {
	Students int `json:"students"`
	Mentors  int `json:"mentors"`
	Admins   int `json:"admins"`
	Sessions int `json:"sessions"`
}

// SeedService loads development fixtures into the account store.
type SeedService interface {
	Seed(ctx context.Context, token string, req SeedRequest) (SeedResult, error)
}

type seedService struct {
	students repository.StudentRepository
	mentors  repository.MentorRepository
	admins   repository.AdminRepository
	sessions repository.SessionRepository
	enabled  bool
	token    string
	logger   zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(students repository.StudentRepository, mentors repository.MentorRepository, admins repository.AdminRepository, sessions repository.SessionRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		students: students,
		mentors:  mentors,
		admins:   admins,
		sessions: sessions,
		enabled:  enabled,
		token:    token,
		logger:   logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) Seed(ctx context.Context, token string, req SeedRequest) (SeedResult, error) {
	if !s.enabled {
		return SeedResult{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return SeedResult{}, ErrSeedUnauthorized
	}

	var result SeedResult

	for i := range req.Students {
		if err := s.students.Create(ctx, &req.Students[i]); err != nil {
			return result, err
		}
		result.Students++
	}

	for i := range req.Mentors {
		// New mentors always enter the review queue pending.
		if req.Mentors[i].Status == "" {
			req.Mentors[i].Status = models.MentorStatusPending
		}
		if err := s.mentors.Create(ctx, &req.Mentors[i]); err != nil {
			return result, err
		}
		result.Mentors++
	}

	for i := range req.Admins {
		if err := s.admins.Create(ctx, &req.Admins[i]); err != nil {
			return result, err
		}
		result.Admins++
	}

	for i := range req.Sessions {
		if err := s.sessions.Create(ctx, &req.Sessions[i]); err != nil {
			return result, err
		}
		result.Sessions++
	}

	s.logger.Info().
		Int("students", result.Students).
		Int("mentors", result.Mentors).
		Int("admins", result.Admins).
		Int("sessions", result.Sessions).
		Msg("fixtures seeded")

	return result, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}
