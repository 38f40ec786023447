package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/service"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/response"
)

// MarkHandler exposes assessment mark endpoints.
type MarkHandler struct {
	marks *service.MarkService
}

// NewMarkHandler constructs MarkHandler.
func NewMarkHandler(marks *service.MarkService) *MarkHandler {
	return &MarkHandler{marks: marks}
}

// Enter records a mark for a learner.
func (h *MarkHandler) Enter(c *gin.Context) {
	var req service.EnterMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && req.StaffID == "" {
		req.StaffID = claims.UserID
	}

	mark, err := h.marks.Enter(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": mark.ID})
}

// List returns marks filtered by learner, staff or grade.
func (h *MarkHandler) List(c *gin.Context) {
	filter := models.MarkFilter{
		LearnerID: c.Query("learner_id"),
		StaffID:   c.Query("staff_id"),
		Grade:     c.Query("grade"),
	}

	marks, err := h.marks.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, marks)
}

// Delete removes a mark entry.
func (h *MarkHandler) Delete(c *gin.Context) {
	if err := h.marks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
