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

// ErrStudentNotFound indicates the student record is missing.
var ErrStudentNotFound = errors.New("student not found")

// StudentService exposes student self-service profile operations.
type StudentService interface {
	GetProfile(ctx context.Context, id uint) (dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, id uint, payload dto.StudentUpdateRequest, image *multipart.FileHeader) (dto.StudentResponse, error)
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	images    ProfileImageService
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewStudentService constructs the student profile service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, images ProfileImageService, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		images:    images,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) GetProfile(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, translateStoreError(err, ErrStudentNotFound)
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) UpdateProfile(ctx context.Context, id uint, payload dto.StudentUpdateRequest, image *multipart.FileHeader) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, translateStoreError(err, ErrStudentNotFound)
	}

	candidates := make(map[string]interface{})

	if payload.Name != nil {
		candidates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		candidates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.GradeLevel != nil {
		candidates["grade_level"] = strings.TrimSpace(*payload.GradeLevel)
	}
	if payload.Bio != nil {
		candidates["bio"] = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Bio))
	}
	if payload.PreferredSubjects != nil {
		candidates["preferred_subjects"] = datatypes.NewJSONSlice(splitAndTrim(*payload.PreferredSubjects))
	}
	if payload.Address != nil {
		candidates["address"] = mergeShallow(student.Address, payload.Address)
	}
	if payload.EmergencyContact != nil {
		candidates["emergency_contact"] = mergeShallow(student.EmergencyContact, payload.EmergencyContact)
	}
	if image != nil {
		url, err := s.images.Replace(ctx, image, student.ProfileImageURL)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		candidates["profile_image_url"] = url
	}

	updates := filterProfileUpdates(RoleStudent, candidates)
	if len(updates) == 0 {
		return dto.NewStudentResponse(student), nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return dto.StudentResponse{}, translateStoreError(err, ErrStudentNotFound)
	}

	return dto.NewStudentResponse(updated), nil
}
