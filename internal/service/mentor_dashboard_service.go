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

// MentorDashboardService produces aggregated dashboard metrics for mentors.
type MentorDashboardService interface {
	GetDashboard(ctx context.Context, mentorID uint) (dto.MentorDashboardResponse, error)
}

type mentorDashboardService struct {
	mentors  repository.MentorRepository
	sessions repository.SessionRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewMentorDashboardService builds the mentor dashboard aggregator.
func NewMentorDashboardService(mentors repository.MentorRepository, sessions repository.SessionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) MentorDashboardService {
	return &mentorDashboardService{
		mentors:  mentors,
		sessions: sessions,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "mentor_dashboard_service").Logger(),
		now:      time.Now,
	}
}

func (s *mentorDashboardService) GetDashboard(ctx context.Context, mentorID uint) (dto.MentorDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:mentor:%d", mentorID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.MentorDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("mentor_id", mentorID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	mentor, err := s.mentors.GetByID(ctx, mentorID)
	if err != nil {
		return dto.MentorDashboardResponse{}, translateStoreError(err, ErrMentorNotFound)
	}

	now := s.now().UTC()
	filter := repository.SessionFilter{MentorID: &mentorID}

	activeStudents, err := s.sessions.DistinctStudents(ctx, mentorID)
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	upcoming, err := s.sessions.ListUpcoming(ctx, filter, now, 5)
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	recent, err := s.sessions.ListRecent(ctx, filter, 5)
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	upcomingCount, err := s.sessions.Count(ctx, repository.SessionFilter{MentorID: &mentorID, Status: models.SessionStatusScheduled})
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	completedCount, err := s.sessions.Count(ctx, repository.SessionFilter{MentorID: &mentorID, Status: models.SessionStatusCompleted})
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	response := dto.MentorDashboardResponse{
		Mentor: dto.NewMentorResponse(mentor),
		Summary: dto.MentorSummary{
			ActiveStudents:    activeStudents,
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
