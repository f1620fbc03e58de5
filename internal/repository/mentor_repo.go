package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

// MentorRepository provides access to mentor records.
type MentorRepository interface {
	Create(ctx context.Context, mentor *models.Mentor) error
	GetByID(ctx context.Context, id uint) (models.Mentor, error)
	StatusByID(ctx context.Context, id uint) (models.MentorStatus, error)
	ListByStatus(ctx context.Context, status models.MentorStatus, limit int) ([]models.Mentor, error)
	ListApproved(ctx context.Context) ([]models.Mentor, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Mentor, error)
	SetDecision(ctx context.Context, id uint, decision models.ApprovalDecision) (models.Mentor, error)
	CountByStatus(ctx context.Context, status models.MentorStatus) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type mentorRepository struct {
	db *gorm.DB
}

// NewMentorRepository constructs a mentor repository.
func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}

func (r *mentorRepository) GetByID(ctx context.Context, id uint) (models.Mentor, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, id).Error; err != nil {
		return models.Mentor{}, err
	}
	return mentor, nil
}

func (r *mentorRepository) StatusByID(ctx context.Context, id uint) (models.MentorStatus, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).Select("id", "status").First(&mentor, id).Error; err != nil {
		return "", err
	}
	return mentor.Status, nil
}

func (r *mentorRepository) ListByStatus(ctx context.Context, status models.MentorStatus, limit int) ([]models.Mentor, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var mentors []models.Mentor
	if err := query.Find(&mentors).Error; err != nil {
		return nil, err
	}
	return mentors, nil
}

func (r *mentorRepository) ListApproved(ctx context.Context) ([]models.Mentor, error) {
	return r.ListByStatus(ctx, models.MentorStatusApproved, 0)
}

func (r *mentorRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Mentor, error) {
	mentor, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Mentor{}, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&mentor).Updates(updates).Error; err != nil {
			return models.Mentor{}, err
		}
	}

	return r.GetByID(ctx, id)
}

// SetDecision overwrites the approval columns with the decision's column set.
// Concurrent decisions on the same mentor race and the last write wins; the
// decision always writes both field groups so the record never mixes them.
func (r *mentorRepository) SetDecision(ctx context.Context, id uint, decision models.ApprovalDecision) (models.Mentor, error) {
	mentor, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Mentor{}, err
	}

	if err := r.db.WithContext(ctx).Model(&mentor).Updates(decision.Updates()).Error; err != nil {
		return models.Mentor{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *mentorRepository) CountByStatus(ctx context.Context, status models.MentorStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Mentor{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *mentorRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Mentor{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
