package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type noticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	List(ctx context.Context, audience string) ([]models.NoticeDetail, error)
	Delete(ctx context.Context, noticeID string) error
}

// PostNoticeRequest publishes an announcement.
type PostNoticeRequest struct {
	Title      string `json:"title" validate:"required"`
	Body       string `json:"body" validate:"required"`
	Audience   string `json:"audience"`
	Priority   string `json:"priority"`
	PostedBy   string `json:"posted_by"`
	ExpiryDate string `json:"expiry_date"`
}

// NoticeService posts and lists announcements.
type NoticeService struct {
	repo      noticeRepository
	allocator idAllocator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoticeService constructs a NoticeService.
func NewNoticeService(repo noticeRepository, allocator idAllocator, validate *validator.Validate, logger *zap.Logger) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{repo: repo, allocator: allocator, validator: validate, logger: logger}
}

// Post publishes a notice.
func (s *NoticeService) Post(ctx context.Context, req PostNoticeRequest) (*models.Notice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}

	noticeID, err := s.allocator.Allocate(ctx, ClassNotice)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate notice id")
	}

	audience := req.Audience
	if audience == "" {
		audience = "All"
	}
	priority := req.Priority
	if priority == "" {
		priority = "Normal"
	}
	notice := &models.Notice{
		NoticeID:   noticeID,
		Title:      req.Title,
		Body:       req.Body,
		Audience:   audience,
		Priority:   priority,
		PostedBy:   req.PostedBy,
		ExpiryDate: req.ExpiryDate,
	}
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notice")
	}
	return notice, nil
}

// List returns notices visible to the audience.
func (s *NoticeService) List(ctx context.Context, audience string) ([]models.NoticeDetail, error) {
	notices, err := s.repo.List(ctx, audience)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notices")
	}
	return notices, nil
}

// Delete removes a notice.
func (s *NoticeService) Delete(ctx context.Context, noticeID string) error {
	if err := s.repo.Delete(ctx, noticeID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notice")
	}
	return nil
}
