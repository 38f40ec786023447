package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type markRepository interface {
	Create(ctx context.Context, mark *models.Mark) error
	List(ctx context.Context, filter models.MarkFilter) ([]models.MarkDetail, error)
	Delete(ctx context.Context, id string) error
}

// EnterMarkRequest records an assessment result. Score is stored as
// entered; it is not checked against max_score.
type EnterMarkRequest struct {
	LearnerID      string  `json:"learner_id" validate:"required"`
	StaffID        string  `json:"staff_id" validate:"required"`
	Subject        string  `json:"subject" validate:"required"`
	AssessmentType string  `json:"assessment_type" validate:"required"`
	Grade          string  `json:"grade"`
	Term           string  `json:"term"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"max_score"`
	Comment        string  `json:"comment"`
}

// MarkService records and lists assessment marks.
type MarkService struct {
	repo      markRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarkService constructs a MarkService.
func NewMarkService(repo markRepository, validate *validator.Validate, logger *zap.Logger) *MarkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkService{repo: repo, validator: validate, logger: logger}
}

// Enter stores a new mark.
func (s *MarkService) Enter(ctx context.Context, req EnterMarkRequest) (*models.Mark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mark payload")
	}

	mark := &models.Mark{
		LearnerID:      req.LearnerID,
		StaffID:        req.StaffID,
		Subject:        req.Subject,
		AssessmentType: req.AssessmentType,
		Grade:          req.Grade,
		Term:           req.Term,
		Score:          req.Score,
		MaxScore:       req.MaxScore,
		Comment:        req.Comment,
	}
	if err := s.repo.Create(ctx, mark); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mark")
	}
	return mark, nil
}

// List returns marks matching the filter.
func (s *MarkService) List(ctx context.Context, filter models.MarkFilter) ([]models.MarkDetail, error) {
	marks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list marks")
	}
	return marks, nil
}

// Delete removes a mark.
func (s *MarkService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete mark")
	}
	return nil
}
