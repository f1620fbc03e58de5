package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

// StudentDashboardService produces aggregated dashboard metrics for students.
type StudentDashboardService interface {
	GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
}

type studentDashboardService struct {
	students repository.StudentRepository
	mentors  repository.MentorRepository
	sessions repository.SessionRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStudentDashboardService builds the student dashboard aggregator.
func NewStudentDashboardService(students repository.StudentRepository, mentors repository.MentorRepository, sessions repository.SessionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentDashboardService {
	return &studentDashboardService{
		students: students,
		mentors:  mentors,
		sessions: sessions,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "student_dashboard_service").Logger(),
		now:      time.Now,
	}
}

func (s *studentDashboardService) GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, translateStoreError(err, ErrStudentNotFound)
	}

	availableMentors, err := s.mentors.CountByStatus(ctx, models.MentorStatusApproved)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	now := s.now().UTC()
	filter := repository.SessionFilter{StudentID: &studentID}

	upcoming, err := s.sessions.ListUpcoming(ctx, filter, now, 5)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	recent, err := s.sessions.ListRecent(ctx, filter, 5)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	upcomingCount, err := s.sessions.Count(ctx, repository.SessionFilter{StudentID: &studentID, Status: models.SessionStatusScheduled})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	completedCount, err := s.sessions.Count(ctx, repository.SessionFilter{StudentID: &studentID, Status: models.SessionStatusCompleted})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	response := dto.StudentDashboardResponse{
		Student: dto.NewStudentResponse(student),
		Summary: dto.StudentSummary{
			AvailableMentors:  availableMentors,
			UpcomingSessions:  upcomingCount,
			CompletedSessions: completedCount,
		},
		UpcomingSessions: dto.NewSessionResponseSlice(upcoming),
		RecentSessions:   dto.NewSessionResponseSlice(recent),
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}
