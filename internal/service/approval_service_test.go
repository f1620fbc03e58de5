package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

type notifierStub struct {
	published []dto.NotificationCreateRequest
}

func (n *notifierStub) Publish(_ context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error) {
	n.published = append(n.published, payload)
	return dto.NotificationResponse{}, nil
}

func newApprovalFixture(t *testing.T, name string, cfg ApprovalConfig) (ApprovalService, repository.MentorRepository, *notifierStub) {
	t.Helper()
	db := testDB(t, name, &models.Mentor{}, &models.ActivityLog{})
	repo := repository.NewMentorRepository(db)
	activity := NewActivityService(repository.NewActivityLogRepository(db), testLogger())
	notifier := &notifierStub{}
	svc := NewApprovalService(repo, activity, notifier, cfg, testLogger())
	return svc, repo, notifier
}

func createMentor(t *testing.T, repo repository.MentorRepository, email string) models.Mentor {
	t.Helper()
	mentor := models.Mentor{Name: "Mia", Email: email, Status: models.MentorStatusPending}
	require.NoError(t, repo.Create(context.Background(), &mentor))
	return mentor
}

func TestApproveSetsStampAndClearsRejection(t *testing.T) {
	svc, repo, notifier := newApprovalFixture(t, "approval_approve", ApprovalConfig{})
	mentor := createMentor(t, repo, "mia@example.com")

	result, err := svc.Approve(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, string(models.MentorStatusApproved), result.Status)
	require.NotNil(t, result.ApprovedAt)
	require.NotNil(t, result.ApprovedBy)
	require.Equal(t, uint(7), *result.ApprovedBy)
	require.Nil(t, result.RejectedAt)
	require.Nil(t, result.RejectionReason)

	require.Len(t, notifier.published, 1)
	require.Equal(t, "mentor.approved", notifier.published[0].Type)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, repo, notifier := newApprovalFixture(t, "approval_reason", ApprovalConfig{})
	mentor := createMentor(t, repo, "nora@example.com")

	_, err := svc.Reject(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin}, "   ")
	require.ErrorIs(t, err, ErrInvalidReason)

	status, err := repo.StatusByID(context.Background(), mentor.ID)
	require.NoError(t, err)
	require.Equal(t, models.MentorStatusPending, status)
	require.Empty(t, notifier.published)
}

func TestRejectRecordsReason(t *testing.T) {
	svc, repo, notifier := newApprovalFixture(t, "approval_reject", ApprovalConfig{})
	mentor := createMentor(t, repo, "olaf@example.com")

	result, err := svc.Reject(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin}, "incomplete application")
	require.NoError(t, err)
	require.Equal(t, string(models.MentorStatusRejected), result.Status)
	require.NotNil(t, result.RejectedAt)
	require.NotNil(t, result.RejectionReason)
	require.Equal(t, "incomplete application", *result.RejectionReason)
	require.Nil(t, result.ApprovedAt)
	require.Nil(t, result.ApprovedBy)

	require.Len(t, notifier.published, 1)
	require.Equal(t, "mentor.rejected", notifier.published[0].Type)
}

func TestReviewedMentorCannotBeReviewedAgain(t *testing.T) {
	svc, repo, _ := newApprovalFixture(t, "approval_locked", ApprovalConfig{})
	mentor := createMentor(t, repo, "pia@example.com")

	_, err := svc.Approve(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin}, "changed my mind")
	require.ErrorIs(t, err, ErrTransitionNotAllowed)
}

func TestReReviewSwapsFieldGroups(t *testing.T) {
	svc, repo, _ := newApprovalFixture(t, "approval_rereview", ApprovalConfig{AllowReReview: true})
	mentor := createMentor(t, repo, "quin@example.com")

	_, err := svc.Approve(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin})
	require.NoError(t, err)

	result, err := svc.Reject(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin}, "policy violation")
	require.NoError(t, err)
	require.Equal(t, string(models.MentorStatusRejected), result.Status)
	require.Nil(t, result.ApprovedAt)
	require.Nil(t, result.ApprovedBy)
	require.NotNil(t, result.RejectedAt)
}

func TestApproveUnknownMentor(t *testing.T) {
	svc, _, _ := newApprovalFixture(t, "approval_missing", ApprovalConfig{})

	_, err := svc.Approve(context.Background(), 404, ActivityActor{ID: 7, Role: RoleAdmin})
	require.ErrorIs(t, err, ErrMentorNotFound)
}

func TestIsApproved(t *testing.T) {
	svc, repo, _ := newApprovalFixture(t, "approval_isapproved", ApprovalConfig{})
	mentor := createMentor(t, repo, "rita@example.com")

	approved, err := svc.IsApproved(context.Background(), mentor.ID)
	require.NoError(t, err)
	require.False(t, approved)

	_, err = svc.Approve(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin})
	require.NoError(t, err)

	approved, err = svc.IsApproved(context.Background(), mentor.ID)
	require.NoError(t, err)
	require.True(t, approved)
}

func TestListRequestsFiltersByStatus(t *testing.T) {
	svc, repo, _ := newApprovalFixture(t, "approval_list", ApprovalConfig{})
	first := createMentor(t, repo, "sam@example.com")
	createMentor(t, repo, "tess@example.com")

	_, err := svc.Approve(context.Background(), first.ID, ActivityActor{ID: 7, Role: RoleAdmin})
	require.NoError(t, err)

	pending, err := svc.ListRequests(context.Background(), "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "tess@example.com", pending[0].Email)

	approved, err := svc.ListRequests(context.Background(), "approved")
	require.NoError(t, err)
	require.Len(t, approved, 1)

	_, err = svc.ListRequests(context.Background(), "bogus")
	require.Error(t, err)
}

func TestUpdateCapabilities(t *testing.T) {
	svc, repo, _ := newApprovalFixture(t, "approval_caps", ApprovalConfig{})
	mentor := createMentor(t, repo, "uma@example.com")

	enabled := true
	result, err := svc.UpdateCapabilities(context.Background(), mentor.ID, ActivityActor{ID: 7, Role: RoleAdmin}, dto.MentorCapabilityRequest{
		CanImpersonate: &enabled,
		Permissions:    map[string]interface{}{"reports": true},
	})
	require.NoError(t, err)
	require.True(t, result.CanImpersonate)
	require.Equal(t, true, result.Permissions["reports"])
}
