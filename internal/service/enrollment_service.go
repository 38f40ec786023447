package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type enrollmentRepository interface {
	SetApproved(ctx context.Context, learnerID string, approved bool) error
	DeleteUnapproved(ctx context.Context, learnerID string) error
	SetFeesBlocked(ctx context.Context, learnerID string, blocked bool) error
}

// ApproveLearnerRequest drives the enrollment workflow.
type ApproveLearnerRequest struct {
	LearnerID string                  `json:"learner_id" validate:"required"`
	Action    models.EnrollmentAction `json:"action"`
}

// EnrollmentService runs the approval state machine over learner
// accounts. Approval is idempotent; rejection only removes a record
// that is still unapproved; the fee-block flag toggles orthogonally to
// approval and is merely stored and reported here.
type EnrollmentService struct {
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, validator: validate, logger: logger}
}

// Apply executes one workflow action against a learner.
func (s *EnrollmentService) Apply(ctx context.Context, req ApproveLearnerRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval payload")
	}

	action := req.Action
	if action == "" {
		action = models.ActionApprove
	}

	var err error
	switch action {
	case models.ActionApprove:
		err = s.repo.SetApproved(ctx, req.LearnerID, true)
	case models.ActionReject:
		err = s.repo.DeleteUnapproved(ctx, req.LearnerID)
	case models.ActionBlockFees:
		err = s.repo.SetFeesBlocked(ctx, req.LearnerID, true)
	case models.ActionUnblockFees:
		err = s.repo.SetFeesBlocked(ctx, req.LearnerID, false)
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown approval action")
	}
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply approval action")
	}

	s.logger.Info("enrollment action applied", zap.String("learner_id", req.LearnerID), zap.String("action", string(action)))
	return nil
}
