package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

// ErrAdminNotFound indicates the admin record is missing.
var ErrAdminNotFound = errors.New("admin not found")

// AdminService exposes admin self-service profile operations.
type AdminService interface {
	GetProfile(ctx context.Context, id uint) (dto.AdminResponse, error)
	UpdateProfile(ctx context.Context, id uint, payload dto.AdminUpdateRequest, image *multipart.FileHeader) (dto.AdminResponse, error)
}

type adminService struct {
	repo      repository.AdminRepository
	validator *validator.Validate
	images    ProfileImageService
	logger    zerolog.Logger
}

// NewAdminService constructs the admin profile service.
func NewAdminService(repo repository.AdminRepository, validate *validator.Validate, images ProfileImageService, logger zerolog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		validator: validate,
		images:    images,
		logger:    logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) GetProfile(ctx context.Context, id uint) (dto.AdminResponse, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.AdminResponse{}, translateStoreError(err, ErrAdminNotFound)
	}
	return dto.NewAdminResponse(admin), nil
}

func (s *adminService) UpdateProfile(ctx context.Context, id uint, payload dto.AdminUpdateRequest, image *multipart.FileHeader) (dto.AdminResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminResponse{}, err
	}

	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.AdminResponse{}, translateStoreError(err, ErrAdminNotFound)
	}

	candidates := make(map[string]interface{})

	if payload.Name != nil {
		candidates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		candidates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.Title != nil {
		candidates["title"] = strings.TrimSpace(*payload.Title)
	}
	if image != nil {
		url, err := s.images.Replace(ctx, image, admin.ProfileImageURL)
		if err != nil {
			return dto.AdminResponse{}, err
		}
		candidates["profile_image_url"] = url
	}

	updates := filterProfileUpdates(RoleAdmin, candidates)
	if len(updates) == 0 {
		return dto.NewAdminResponse(admin), nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return dto.AdminResponse{}, translateStoreError(err, ErrAdminNotFound)
	}

	return dto.NewAdminResponse(updated), nil
}
