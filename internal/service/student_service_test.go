package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

func newStudentService(t *testing.T, name string) (StudentService, repository.StudentRepository) {
	t.Helper()
	db := testDB(t, name, &models.Student{})
	repo := repository.NewStudentRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewStudentService(repo, validate, nil, testLogger()), repo
}

func stringPtr(s string) *string { return &s }

func TestStudentUpdateProfileSplitsSubjects(t *testing.T) {
	svc, repo := newStudentService(t, "student_subjects")

	student := models.Student{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, repo.Create(context.Background(), &student))

	updated, err := svc.UpdateProfile(context.Background(), student.ID, dto.StudentUpdateRequest{
		PreferredSubjects: stringPtr("math,  physics ,, chemistry"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"math", "physics", "chemistry"}, updated.PreferredSubjects)
}

func TestStudentUpdateProfileMergesAddressShallow(t *testing.T) {
	svc, repo := newStudentService(t, "student_address")

	student := models.Student{
		Name:    "Ben",
		Email:   "ben@example.com",
		Address: datatypes.JSONMap{"city": "Oslo", "zip": "0150"},
	}
	require.NoError(t, repo.Create(context.Background(), &student))

	updated, err := svc.UpdateProfile(context.Background(), student.ID, dto.StudentUpdateRequest{
		Address: map[string]interface{}{"city": "Bergen"},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "Bergen", updated.Address["city"])
	require.Equal(t, "0150", updated.Address["zip"])
}

func TestStudentUpdateProfileEmptyPatchLeavesRecord(t *testing.T) {
	svc, repo := newStudentService(t, "student_empty")

	student := models.Student{Name: "Cleo", Email: "cleo@example.com", Bio: "hi"}
	require.NoError(t, repo.Create(context.Background(), &student))

	updated, err := svc.UpdateProfile(context.Background(), student.ID, dto.StudentUpdateRequest{}, nil)
	require.NoError(t, err)
	require.Equal(t, "Cleo", updated.Name)
	require.Equal(t, "hi", updated.Bio)
}

func TestStudentUpdateProfileDuplicateEmail(t *testing.T) {
	svc, repo := newStudentService(t, "student_dup")

	first := models.Student{Name: "Dara", Email: "dara@example.com"}
	second := models.Student{Name: "Eli", Email: "eli@example.com"}
	require.NoError(t, repo.Create(context.Background(), &first))
	require.NoError(t, repo.Create(context.Background(), &second))

	_, err := svc.UpdateProfile(context.Background(), second.ID, dto.StudentUpdateRequest{
		Email: stringPtr("dara@example.com"),
	}, nil)
	require.ErrorIs(t, err, ErrDuplicateField)
}

func TestStudentUpdateProfileNormalizesEmail(t *testing.T) {
	svc, repo := newStudentService(t, "student_email")

	student := models.Student{Name: "Fay", Email: "fay@example.com"}
	require.NoError(t, repo.Create(context.Background(), &student))

	updated, err := svc.UpdateProfile(context.Background(), student.ID, dto.StudentUpdateRequest{
		Email: stringPtr("  Fay.New@Example.COM "),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "fay.new@example.com", updated.Email)
}

func TestStudentUpdateProfileInvalidEmail(t *testing.T) {
	svc, repo := newStudentService(t, "student_invalid")

	student := models.Student{Name: "Gil", Email: "gil@example.com"}
	require.NoError(t, repo.Create(context.Background(), &student))

	_, err := svc.UpdateProfile(context.Background(), student.ID, dto.StudentUpdateRequest{
		Email: stringPtr("not-an-email"),
	}, nil)
	require.Error(t, err)
	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestStudentGetProfileNotFound(t *testing.T) {
	svc, _ := newStudentService(t, "student_missing")

	_, err := svc.GetProfile(context.Background(), 404)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
