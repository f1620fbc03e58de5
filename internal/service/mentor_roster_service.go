package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

// MentorRosterService lists the students a mentor has sessions with.
type MentorRosterService interface {
	ListStudents(ctx context.Context, mentorID uint) ([]dto.StudentPublicResponse, error)
}

type mentorRosterService struct {
	mentors  repository.MentorRepository
	students repository.StudentRepository
	sessions repository.SessionRepository
	logger   zerolog.Logger
}

// NewMentorRosterService constructs the roster service.
func NewMentorRosterService(mentors repository.MentorRepository, students repository.StudentRepository, sessions repository.SessionRepository, logger zerolog.Logger) MentorRosterService {
	return &mentorRosterService{
		mentors:  mentors,
		students: students,
		sessions: sessions,
		logger:   logger.With().Str("component", "mentor_roster_service").Logger(),
	}
}

func (s *mentorRosterService) ListStudents(ctx context.Context, mentorID uint) ([]dto.StudentPublicResponse, error) {
	if _, err := s.mentors.GetByID(ctx, mentorID); err != nil {
		return nil, translateStoreError(err, ErrMentorNotFound)
	}

	ids, err := s.sessions.StudentIDs(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	students, err := s.students.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentPublicResponseSlice(students), nil
}
