package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type feeRepository interface {
	Create(ctx context.Context, fee *models.Fee) error
	FindByFeeID(ctx context.Context, feeID string) (*models.Fee, error)
	List(ctx context.Context, learnerID string) ([]models.FeeDetail, error)
	ApplyPayment(ctx context.Context, payment *models.FeePayment) (*models.Fee, error)
	ListPayments(ctx context.Context, filter models.FeePaymentFilter) ([]models.FeePayment, error)
	Totals(ctx context.Context) (assessed, collected float64, err error)
}

// AssessFeeRequest creates a new ledger entry for a learner.
type AssessFeeRequest struct {
	LearnerID    string  `json:"learner_id" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Amount       float64 `json:"amount" validate:"gte=0"`
	DueDate      string  `json:"due_date"`
	Term         string  `json:"term"`
	AcademicYear string  `json:"academic_year"`
}

// RecordPaymentRequest applies a payment against a fee. Amounts are
// accepted as submitted: the ledger does not cap a payment at the
// outstanding balance.
type RecordPaymentRequest struct {
	FeeID         string  `json:"fee_id" validate:"required"`
	LearnerID     string  `json:"learner_id" validate:"required"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Reference     string  `json:"reference"`
	ReceivedBy    string  `json:"received_by"`
	Notes         string  `json:"notes"`
}

// FeeService maintains the per-learner fee ledger: assessments,
// payment application and balance reporting.
type FeeService struct {
	repo      feeRepository
	allocator idAllocator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs a FeeService.
func NewFeeService(repo feeRepository, allocator idAllocator, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{repo: repo, allocator: allocator, validator: validate, logger: logger}
}

// Assess creates a fee with nothing paid yet.
func (s *FeeService) Assess(ctx context.Context, req AssessFeeRequest) (*models.Fee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee payload")
	}

	feeID, err := s.allocator.Allocate(ctx, ClassFee)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate fee id")
	}

	fee := &models.Fee{
		FeeID:        feeID,
		LearnerID:    req.LearnerID,
		Description:  req.Description,
		Amount:       req.Amount,
		Paid:         0,
		DueDate:      req.DueDate,
		Term:         req.Term,
		AcademicYear: req.AcademicYear,
		Status:       models.FeeUnpaid,
	}
	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fee")
	}

	s.logger.Info("fee assessed", zap.String("fee_id", fee.FeeID), zap.Float64("amount", fee.Amount))
	return fee, nil
}

// RecordPayment stores an immutable payment and rebalances the parent
// fee in one atomic unit. An unknown fee fails the whole operation:
// no orphan payment row survives.
func (s *FeeService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*models.FeePayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	paymentID, err := s.allocator.Allocate(ctx, ClassPayment)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate payment id")
	}

	method := req.PaymentMethod
	if method == "" {
		method = "Cash"
	}
	payment := &models.FeePayment{
		PaymentID:     paymentID,
		FeeID:         req.FeeID,
		LearnerID:     req.LearnerID,
		Amount:        req.Amount,
		PaymentMethod: method,
		Reference:     req.Reference,
		ReceivedBy:    req.ReceivedBy,
		Notes:         req.Notes,
	}

	fee, err := s.repo.ApplyPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.PaymentID),
		zap.String("fee_id", fee.FeeID),
		zap.Float64("amount", payment.Amount),
		zap.String("fee_status", string(fee.Status)))
	return payment, nil
}

// List returns fees, optionally restricted to one learner.
func (s *FeeService) List(ctx context.Context, learnerID string) ([]models.FeeDetail, error) {
	fees, err := s.repo.List(ctx, learnerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fees")
	}
	return fees, nil
}

// ListPayments returns payments matching the filter.
func (s *FeeService) ListPayments(ctx context.Context, filter models.FeePaymentFilter) ([]models.FeePayment, error) {
	payments, err := s.repo.ListPayments(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return payments, nil
}

// Outstanding reports the remaining balance on one fee.
func (s *FeeService) Outstanding(ctx context.Context, feeID string) (float64, error) {
	fee, err := s.repo.FindByFeeID(ctx, feeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee")
	}
	return fee.Outstanding(), nil
}
