package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/mentorlink-go-api/internal/dto"
	"github.com/noah-isme/mentorlink-go-api/internal/models"
	"github.com/noah-isme/mentorlink-go-api/internal/observability"
	"github.com/noah-isme/mentorlink-go-api/internal/repository"
)

var (
	// ErrInvalidReason indicates a rejection was attempted without a usable reason.
	ErrInvalidReason = errors.New("rejection reason is required")
	// ErrTransitionNotAllowed indicates the mentor is no longer pending and
	// re-review is disabled.
	ErrTransitionNotAllowed = errors.New("mentor request has already been reviewed")
)

// ApprovalNotifier publishes review outcome notifications. Delivery is
// fire-and-forget: a publish failure never affects the recorded decision.
type ApprovalNotifier interface {
	Publish(ctx context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error)
}

// ApprovalConfig tunes the approval transition policy.
type ApprovalConfig struct {
	// AllowReReview permits approving or rejecting mentors that are no
	// longer pending. When false only pending -> approved and
	// pending -> rejected are legal.
	AllowReReview bool
}

// ApprovalService owns the mentor approval lifecycle.
type ApprovalService interface {
	Approve(ctx context.Context, mentorID uint, actor ActivityActor) (dto.MentorResponse, error)
	Reject(ctx context.Context, mentorID uint, actor ActivityActor, reason string) (dto.MentorResponse, error)
	IsApproved(ctx context.Context, mentorID uint) (bool, error)
	ListRequests(ctx context.Context, status string) ([]dto.MentorRequestResponse, error)
	UpdateCapabilities(ctx context.Context, mentorID uint, actor ActivityActor, payload dto.MentorCapabilityRequest) (dto.MentorResponse, error)
}

type approvalService struct {
	repo      repository.MentorRepository
	activity  ActivityRecorder
	notifier  ApprovalNotifier
	cfg       ApprovalConfig
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewApprovalService constructs the approval service.
func NewApprovalService(repo repository.MentorRepository, activity ActivityRecorder, notifier ApprovalNotifier, cfg ApprovalConfig, logger zerolog.Logger) ApprovalService {
	return &approvalService{
		repo:      repo,
		activity:  activity,
		notifier:  notifier,
		cfg:       cfg,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "approval_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/mentorlink-go-api/internal/service/approval"),
		now:       time.Now,
	}
}

func (s *approvalService) Approve(ctx context.Context, mentorID uint, actor ActivityActor) (dto.MentorResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "approval.approve", trace.WithAttributes(
		attribute.Int("mentor.id", int(mentorID)),
		attribute.Int("actor.id", int(actor.ID)),
	))
	defer span.End()

	mentor, err := s.review(spanCtx, mentorID, models.ApprovedDecision(s.now().UTC(), actor.ID))
	if err != nil {
		span.RecordError(err)
		return dto.MentorResponse{}, err
	}

	observability.ApprovalDecisions().WithLabelValues("approved").Inc()
	s.audit(spanCtx, actor, "mentor.approved", mentorID, nil)
	s.notify(spanCtx, mentor, "mentor.approved", "Your mentor application has been approved. Welcome aboard!")

	return dto.NewMentorResponse(mentor), nil
}

func (s *approvalService) Reject(ctx context.Context, mentorID uint, actor ActivityActor, reason string) (dto.MentorResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "approval.reject", trace.WithAttributes(
		attribute.Int("mentor.id", int(mentorID)),
		attribute.Int("actor.id", int(actor.ID)),
	))
	defer span.End()

	cleanReason := strings.TrimSpace(s.sanitizer.Sanitize(reason))
	if cleanReason == "" {
		span.RecordError(ErrInvalidReason)
		return dto.MentorResponse{}, ErrInvalidReason
	}

	mentor, err := s.review(spanCtx, mentorID, models.RejectedDecision(s.now().UTC(), cleanReason))
	if err != nil {
		span.RecordError(err)
		return dto.MentorResponse{}, err
	}

	observability.ApprovalDecisions().WithLabelValues("rejected").Inc()
	s.audit(spanCtx, actor, "mentor.rejected", mentorID, map[string]interface{}{"reason": cleanReason})
	s.notify(spanCtx, mentor, "mentor.rejected", fmt.Sprintf("Your mentor application was not approved: %s", cleanReason))

	return dto.NewMentorResponse(mentor), nil
}

// review applies the transition policy and writes the decision. Concurrent
// reviews of the same mentor race and the last write wins.
func (s *approvalService) review(ctx context.Context, mentorID uint, decision models.ApprovalDecision) (models.Mentor, error) {
	current, err := s.repo.StatusByID(ctx, mentorID)
	if err != nil {
		return models.Mentor{}, translateStoreError(err, ErrMentorNotFound)
	}

	if current != models.MentorStatusPending && !s.cfg.AllowReReview {
		return models.Mentor{}, ErrTransitionNotAllowed
	}

	mentor, err := s.repo.SetDecision(ctx, mentorID, decision)
	if err != nil {
		return models.Mentor{}, translateStoreError(err, ErrMentorNotFound)
	}

	return mentor, nil
}

func (s *approvalService) IsApproved(ctx context.Context, mentorID uint) (bool, error) {
	status, err := s.repo.StatusByID(ctx, mentorID)
	if err != nil {
		return false, translateStoreError(err, ErrMentorNotFound)
	}
	return status == models.MentorStatusApproved, nil
}

func (s *approvalService) ListRequests(ctx context.Context, status string) ([]dto.MentorRequestResponse, error) {
	normalized := models.MentorStatus(strings.ToLower(strings.TrimSpace(status)))
	switch normalized {
	case "", models.MentorStatusPending, models.MentorStatusApproved, models.MentorStatusRejected:
	default:
		return nil, fmt.Errorf("unknown status filter %q", status)
	}

	mentors, err := s.repo.ListByStatus(ctx, normalized, 0)
	if err != nil {
		return nil, err
	}

	return dto.NewMentorRequestResponseSlice(mentors), nil
}

func (s *approvalService) UpdateCapabilities(ctx context.Context, mentorID uint, actor ActivityActor, payload dto.MentorCapabilityRequest) (dto.MentorResponse, error) {
	updates := make(map[string]interface{})
	if payload.CanImpersonate != nil {
		updates["can_impersonate"] = *payload.CanImpersonate
	}
	if payload.Permissions != nil {
		updates["permissions"] = datatypes.JSONMap(payload.Permissions)
	}

	if len(updates) == 0 {
		mentor, err := s.repo.GetByID(ctx, mentorID)
		if err != nil {
			return dto.MentorResponse{}, translateStoreError(err, ErrMentorNotFound)
		}
		return dto.NewMentorResponse(mentor), nil
	}

	mentor, err := s.repo.Update(ctx, mentorID, updates)
	if err != nil {
		return dto.MentorResponse{}, translateStoreError(err, ErrMentorNotFound)
	}

	s.audit(ctx, actor, "mentor.capabilities_updated", mentorID, map[string]interface{}{"fields": fieldNames(updates)})

	return dto.NewMentorResponse(mentor), nil
}

func (s *approvalService) audit(ctx context.Context, actor ActivityActor, action string, mentorID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	id := mentorID
	if err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "mentor",
		EntityID:   &id,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record approval activity")
	}
}

func (s *approvalService) notify(ctx context.Context, mentor models.Mentor, kind, message string) {
	if s.notifier == nil {
		return
	}

	if _, err := s.notifier.Publish(ctx, dto.NotificationCreateRequest{
		UserID:  strconv.FormatUint(uint64(mentor.ID), 10),
		Type:    kind,
		Message: message,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("mentor_id", mentor.ID).Msg("failed to publish approval notification")
	}
}

func fieldNames(updates map[string]interface{}) []string {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	return names
}
