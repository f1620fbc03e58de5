package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/mentorlink-go-api/internal/models"
)

func mentorTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Mentor{}))
	return db
}

func TestSetDecisionClearsOppositeGroup(t *testing.T) {
	repo := NewMentorRepository(mentorTestDB(t, "repo_decision"))

	mentor := models.Mentor{Name: "Wes", Email: "wes@example.com", Status: models.MentorStatusPending}
	require.NoError(t, repo.Create(context.Background(), &mentor))

	at := time.Now().UTC()

	rejected, err := repo.SetDecision(context.Background(), mentor.ID, models.RejectedDecision(at, "missing references"))
	require.NoError(t, err)
	require.Equal(t, models.MentorStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	require.NotNil(t, rejected.RejectionReason)
	require.Nil(t, rejected.ApprovedAt)
	require.Nil(t, rejected.ApprovedBy)

	approved, err := repo.SetDecision(context.Background(), mentor.ID, models.ApprovedDecision(at, 9))
	require.NoError(t, err)
	require.Equal(t, models.MentorStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedBy)
	require.Nil(t, approved.RejectedAt)
	require.Nil(t, approved.RejectionReason)
}

func TestListByStatusOrdersByCreation(t *testing.T) {
	repo := NewMentorRepository(mentorTestDB(t, "repo_list"))

	older := models.Mentor{Name: "Xena", Email: "xena@example.com", Status: models.MentorStatusPending, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Mentor{Name: "Yuri", Email: "yuri@example.com", Status: models.MentorStatusPending}
	require.NoError(t, repo.Create(context.Background(), &older))
	require.NoError(t, repo.Create(context.Background(), &newer))

	pending, err := repo.ListByStatus(context.Background(), models.MentorStatusPending, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, "xena@example.com", pending[0].Email)

	all, err := repo.ListByStatus(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestCreateDuplicateEmailTranslated(t *testing.T) {
	repo := NewMentorRepository(mentorTestDB(t, "repo_dup"))

	first := models.Mentor{Name: "Zoe", Email: "zoe@example.com"}
	require.NoError(t, repo.Create(context.Background(), &first))

	second := models.Mentor{Name: "Zoe Again", Email: "zoe@example.com"}
	err := repo.Create(context.Background(), &second)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestStatusByID(t *testing.T) {
	repo := NewMentorRepository(mentorTestDB(t, "repo_status"))

	mentor := models.Mentor{Name: "Abe", Email: "abe@example.com", Status: models.MentorStatusPending}
	require.NoError(t, repo.Create(context.Background(), &mentor))

	status, err := repo.StatusByID(context.Background(), mentor.ID)
	require.NoError(t, err)
	require.Equal(t, models.MentorStatusPending, status)

	_, err = repo.StatusByID(context.Background(), 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
