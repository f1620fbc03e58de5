package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

// AdminRepository provides access to admin records.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (models.Admin, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository constructs an admin repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) GetByID(ctx context.Context, id uint) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (r *adminRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Admin, error) {
	admin, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Admin{}, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&admin).Updates(updates).Error; err != nil {
			return models.Admin{}, err
		}
	}

	return r.GetByID(ctx, id)
}
