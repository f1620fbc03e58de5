package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

// AdminDashboardService produces platform-wide counters for administrators.
// Counts change on every review decision, so the admin view is never cached.
type AdminDashboardService interface {
	GetDashboard(ctx context.Context, adminID uint) (dto.AdminDashboardResponse, error)
}

type adminDashboardService struct {
	admins   repository.AdminRepository
	students repository.StudentRepository
	mentors  repository.MentorRepository
	sessions repository.SessionRepository
	logger   zerolog.Logger
}

// NewAdminDashboardService builds the admin dashboard aggregator.
func NewAdminDashboardService(admins repository.AdminRepository, students repository.StudentRepository, mentors repository.MentorRepository, sessions repository.SessionRepository, logger zerolog.Logger) AdminDashboardService {
	return &adminDashboardService{
		admins:   admins,
		students: students,
		mentors:  mentors,
		sessions: sessions,
		logger:   logger.With().Str("component", "admin_dashboard_service").Logger(),
	}
}

func (s *adminDashboardService) GetDashboard(ctx context.Context, adminID uint) (dto.AdminDashboardResponse, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return dto.AdminDashboardResponse{}, translateStoreError(err, ErrAdminNotFound)
	}

	students, err := s.students.CountAll(ctx)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	mentors, err := s.mentors.CountAll(ctx)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	approved, err := s.mentors.CountByStatus(ctx, models.MentorStatusApproved)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	pending, err := s.mentors.CountByStatus(ctx, models.MentorStatusPending)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	rejected, err := s.mentors.CountByStatus(ctx, models.MentorStatusRejected)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	sessions, err := s.sessions.CountAll(ctx)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	pendingRequests, err := s.mentors.ListByStatus(ctx, models.MentorStatusPending, 5)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	return dto.AdminDashboardResponse{
		Admin: dto.NewAdminResponse(admin),
		Totals: dto.AdminTotals{
			Students:        students,
			Mentors:         mentors,
			ApprovedMentors: approved,
			PendingMentors:  pending,
			RejectedMentors: rejected,
			Sessions:        sessions,
		},
		PendingRequests: dto.NewMentorRequestResponseSlice(pendingRequests),
	}, nil
}
