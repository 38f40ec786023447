package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type learnerRepository interface {
	List(ctx context.Context, filter models.LearnerFilter) ([]models.Learner, error)
	FindByLearnerID(ctx context.Context, learnerID string) (*models.Learner, error)
}

// LearnerService serves learner roster queries.
type LearnerService struct {
	repo   learnerRepository
	logger *zap.Logger
}

// NewLearnerService constructs a LearnerService.
func NewLearnerService(repo learnerRepository, logger *zap.Logger) *LearnerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LearnerService{repo: repo, logger: logger}
}

// List returns learners matching the filter.
func (s *LearnerService) List(ctx context.Context, filter models.LearnerFilter) ([]models.Learner, error) {
	learners, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list learners")
	}
	return learners, nil
}

// Get returns one learner by display identifier.
func (s *LearnerService) Get(ctx context.Context, learnerID string) (*models.Learner, error) {
	learner, err := s.repo.FindByLearnerID(ctx, learnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load learner")
	}
	return learner, nil
}
