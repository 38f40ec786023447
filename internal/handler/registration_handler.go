package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/service"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/response"
)

// RegistrationHandler exposes the self-service signup endpoints.
type RegistrationHandler struct {
	service *service.RegistrationService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: svc}
}

// RegisterStaff creates a staff account; the institutional email domain
// decides the role.
func (h *RegistrationHandler) RegisterStaff(c *gin.Context) {
	var req service.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	staff, err := h.service.RegisterStaff(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"staff_id": staff.StaffID,
		"role":     staff.Role,
		"message":  "Registration successful. You can now log in.",
	})
}

// RegisterLearner creates a pending learner account awaiting admin
// approval.
func (h *RegistrationHandler) RegisterLearner(c *gin.Context) {
	var req service.RegisterLearnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	learner, err := h.service.RegisterLearner(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"learner_id": learner.LearnerID,
		"message":    "Registration successful. Your account is pending admin approval.",
	})
}
