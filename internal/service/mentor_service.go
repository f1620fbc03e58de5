package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

// ErrMentorNotFound indicates the mentor record is missing.
var ErrMentorNotFound = errors.New("mentor not found")

// MentorService exposes mentor self-service profile operations and the
// student-facing directory of approved mentors.
type MentorService interface {
	GetProfile(ctx context.Context, id uint) (dto.MentorResponse, error)
	UpdateProfile(ctx context.Context, id uint, payload dto.MentorUpdateRequest, image *multipart.FileHeader) (dto.MentorResponse, error)
	ListApproved(ctx context.Context) ([]dto.MentorPublicResponse, error)
}

type mentorService struct {
	repo      repository.MentorRepository
	validator *validator.Validate
	images    ProfileImageService
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewMentorService constructs the mentor profile service.
func NewMentorService(repo repository.MentorRepository, validate *validator.Validate, images ProfileImageService, logger zerolog.Logger) MentorService {
	return &mentorService{
		repo:      repo,
		validator: validate,
		images:    images,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "mentor_service").Logger(),
	}
}

func (s *mentorService) GetProfile(ctx context.Context, id uint) (dto.MentorResponse, error) {
	mentor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.MentorResponse{}, translateStoreError(err, ErrMentorNotFound)
	}
	return dto.NewMentorResponse(mentor), nil
}

func (s *mentorService) UpdateProfile(ctx context.Context, id uint, payload dto.MentorUpdateRequest, image *multipart.FileHeader) (dto.MentorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MentorResponse{}, err
	}

	mentor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.MentorResponse{}, translateStoreError(err, ErrMentorNotFound)
	}

	candidates := make(map[string]interface{})

	if payload.Name != nil {
		candidates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		candidates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.Bio != nil {
		candidates["bio"] = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Bio))
	}
	if payload.Expertise != nil {
		candidates["expertise"] = datatypes.NewJSONSlice(splitAndTrim(*payload.Expertise))
	}
	if payload.YearsExperience != nil {
		candidates["years_experience"] = *payload.YearsExperience
	}
	if payload.Address != nil {
		candidates["address"] = mergeShallow(mentor.Address, payload.Address)
	}
	if image != nil {
		url, err := s.images.Replace(ctx, image, mentor.ProfileImageURL)
		if err != nil {
			return dto.MentorResponse{}, err
		}
		candidates["profile_image_url"] = url
	}

	// These are admin-owned; the policy drops them even when a mentor
	// includes them in the patch.
	if payload.Status != nil {
		candidates["status"] = strings.TrimSpace(*payload.Status)
	}
	if payload.CanImpersonate != nil {
		candidates["can_impersonate"] = *payload.CanImpersonate
	}
	if payload.Permissions != nil {
		candidates["permissions"] = payload.Permissions
	}

	updates := filterProfileUpdates(RoleMentor, candidates)
	if len(updates) == 0 {
		return dto.NewMentorResponse(mentor), nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return dto.MentorResponse{}, translateStoreError(err, ErrMentorNotFound)
	}

	return dto.NewMentorResponse(updated), nil
}

func (s *mentorService) ListApproved(ctx context.Context) ([]dto.MentorPublicResponse, error) {
	mentors, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MentorPublicResponse, 0, len(mentors))
	for _, mentor := range mentors {
		responses = append(responses, dto.NewMentorPublicResponse(mentor))
	}
	return responses, nil
}
