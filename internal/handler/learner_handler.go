package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/service"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/response"
)

// LearnerHandler exposes learner listing and the enrollment workflow.
type LearnerHandler struct {
	learners   *service.LearnerService
	enrollment *service.EnrollmentService
}

// NewLearnerHandler constructs LearnerHandler.
func NewLearnerHandler(learners *service.LearnerService, enrollment *service.EnrollmentService) *LearnerHandler {
	return &LearnerHandler{learners: learners, enrollment: enrollment}
}

// List returns learners filtered by grade and approval state. Without
// an approved parameter only approved learners are returned; pass
// approved=all for the full roster.
func (h *LearnerHandler) List(c *gin.Context) {
	var filter models.LearnerFilter
	filter.Grade = c.Query("grade")
	approved, present := c.GetQuery("approved")
	switch {
	case !present:
		v := true
		filter.Approved = &v
	case approved == "all" || approved == "":
		// no approval filter
	case approved == "false" || approved == "0":
		v := false
		filter.Approved = &v
	default:
		v := true
		filter.Approved = &v
	}

	learners, err := h.learners.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, learners)
}

// Get returns one learner by identifier.
func (h *LearnerHandler) Get(c *gin.Context) {
	learner, err := h.learners.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, learner)
}

// Approve applies an enrollment action: approve, reject, block_fees or
// unblock_fees.
func (h *LearnerHandler) Approve(c *gin.Context) {
	var req service.ApproveLearnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.enrollment.Apply(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
