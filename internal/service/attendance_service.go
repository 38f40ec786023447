package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, error)
}

// SubmitAttendanceRequest is one attendance entry. Submissions for an
// existing (learner, date, subject) key overwrite the prior record.
type SubmitAttendanceRequest struct {
	LearnerID string `json:"learner_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Grade     string `json:"grade"`
	Subject   string `json:"subject"`
	StaffID   string `json:"staff_id"`
	Reason    string `json:"reason"`
}

// AttendanceService records and lists attendance. Teachers typically
// submit a whole class register at once, so Submit accepts a batch.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger}
}

// Submit upserts a batch of attendance entries.
func (s *AttendanceService) Submit(ctx context.Context, entries []SubmitAttendanceRequest) error {
	for _, entry := range entries {
		if err := s.validator.Struct(entry); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
		}
	}
	for _, entry := range entries {
		record := &models.AttendanceRecord{
			LearnerID: entry.LearnerID,
			Date:      entry.Date,
			Status:    entry.Status,
			Grade:     entry.Grade,
			Subject:   entry.Subject,
			StaffID:   entry.StaffID,
			Reason:    entry.Reason,
		}
		if err := s.repo.Upsert(ctx, record); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
		}
	}
	return nil
}

// List returns attendance records matching the filter.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}
