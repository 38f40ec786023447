package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/service"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/response"
)

// FeeHandler exposes the fee ledger.
type FeeHandler struct {
	fees *service.FeeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees *service.FeeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// Assess creates a new fee for a learner.
func (h *FeeHandler) Assess(c *gin.Context) {
	var req service.AssessFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	fee, err := h.fees.Assess(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"fee_id": fee.FeeID})
}

// List returns fees, optionally for one learner, with outstanding
// balances.
func (h *FeeHandler) List(c *gin.Context) {
	fees, err := h.fees.List(c.Request.Context(), c.Query("learner_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}

// RecordPayment applies a payment against a fee and updates its status
// atomically.
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && req.ReceivedBy == "" {
		req.ReceivedBy = claims.UserID
	}

	payment, err := h.fees.RecordPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"payment_id": payment.PaymentID})
}

// ListPayments returns payment history filtered by learner or fee.
func (h *FeeHandler) ListPayments(c *gin.Context) {
	filter := models.FeePaymentFilter{
		LearnerID: c.Query("learner_id"),
		FeeID:     c.Query("fee_id"),
	}

	payments, err := h.fees.ListPayments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}
