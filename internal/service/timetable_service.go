package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type timetableRepository interface {
	Create(ctx context.Context, slot *models.TimetableSlot) error
	List(ctx context.Context, grade string) ([]models.TimetableDetail, error)
	Delete(ctx context.Context, id string) error
}

// AddSlotRequest places one period on a grade's timetable. Nothing
// stops two slots sharing (grade, day, period); the portal has always
// allowed double-booking and leaves resolution to the timetabler.
type AddSlotRequest struct {
	Grade     string `json:"grade" validate:"required"`
	Day       string `json:"day" validate:"required"`
	Period    int    `json:"period" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	StaffID   string `json:"staff_id"`
	Room      string `json:"room"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TimetableService maintains the weekly timetable.
type TimetableService struct {
	repo      timetableRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs a TimetableService.
func NewTimetableService(repo timetableRepository, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, validator: validate, logger: logger}
}

// Add creates a timetable slot.
func (s *TimetableService) Add(ctx context.Context, req AddSlotRequest) (*models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	slot := &models.TimetableSlot{
		Grade:     req.Grade,
		Day:       req.Day,
		Period:    req.Period,
		Subject:   req.Subject,
		StaffID:   req.StaffID,
		Room:      req.Room,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timetable slot")
	}
	return slot, nil
}

// List returns slots, optionally for one grade.
func (s *TimetableService) List(ctx context.Context, grade string) ([]models.TimetableDetail, error) {
	slots, err := s.repo.List(ctx, grade)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable")
	}
	return slots, nil
}

// Delete removes a timetable slot.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable slot")
	}
	return nil
}
