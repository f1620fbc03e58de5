package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

// SessionFilter narrows session queries to one side of the mentorship pair.
type SessionFilter struct {
	MentorID  *uint
	StudentID *uint
	Status    string
}

// SessionRepository provides access to mentorship sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.MentorshipSession) error
	Count(ctx context.Context, filter SessionFilter) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	ListUpcoming(ctx context.Context, filter SessionFilter, after time.Time, limit int) ([]models.MentorshipSession, error)
	ListRecent(ctx context.Context, filter SessionFilter, limit int) ([]models.MentorshipSession, error)
	DistinctStudents(ctx context.Context, mentorID uint) (int64, error)
	StudentIDs(ctx context.Context, mentorID uint) ([]uint, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func applySessionFilter(query *gorm.DB, filter SessionFilter) *gorm.DB {
	if filter.MentorID != nil {
		query = query.Where("mentor_id = ?", *filter.MentorID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (r *sessionRepository) Create(ctx context.Context, session *models.MentorshipSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Count(ctx context.Context, filter SessionFilter) (int64, error) {
	var count int64
	query := applySessionFilter(r.db.WithContext(ctx).Model(&models.MentorshipSession{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sessionRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Count(ctx, SessionFilter{})
}

func (r *sessionRepository) ListUpcoming(ctx context.Context, filter SessionFilter, after time.Time, limit int) ([]models.MentorshipSession, error) {
	if limit <= 0 {
		limit = 5
	}

	var sessions []models.MentorshipSession
	query := applySessionFilter(r.db.WithContext(ctx), filter).
		Where("scheduled_at > ?", after).
		Where("status = ?", models.SessionStatusScheduled).
		Order("scheduled_at ASC").
		Limit(limit)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) ListRecent(ctx context.Context, filter SessionFilter, limit int) ([]models.MentorshipSession, error) {
	if limit <= 0 {
		limit = 5
	}

	var sessions []models.MentorshipSession
	query := applySessionFilter(r.db.WithContext(ctx), filter).
		Order("scheduled_at DESC").
		Limit(limit)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) DistinctStudents(ctx context.Context, mentorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MentorshipSession{}).
		Where("mentor_id = ?", mentorID).
		Distinct("student_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sessionRepository) StudentIDs(ctx context.Context, mentorID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.MentorshipSession{}).
		Where("mentor_id = ?", mentorID).
		Distinct().
		Order("student_id").
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
