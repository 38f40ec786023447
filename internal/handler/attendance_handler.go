package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/service"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/response"
)

// AttendanceHandler exposes the attendance register.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Submit records attendance entries. The body may be a single entry or
// an array of entries; resubmitting a (learner, date, subject) key
// overwrites the earlier record.
func (h *AttendanceHandler) Submit(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	var entries []service.SubmitAttendanceRequest
	if err := json.Unmarshal(body, &entries); err != nil {
		var single service.SubmitAttendanceRequest
		if err := json.Unmarshal(body, &single); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		entries = []service.SubmitAttendanceRequest{single}
	}
	if claims := claimsFromContext(c); claims != nil {
		for i := range entries {
			if entries[i].StaffID == "" {
				entries[i].StaffID = claims.UserID
			}
		}
	}

	if err := h.attendance.Submit(c.Request.Context(), entries); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": len(entries)})
}

// List returns attendance entries filtered by learner, grade or date.
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := models.AttendanceFilter{
		LearnerID: c.Query("learner_id"),
		Grade:     c.Query("grade"),
		Date:      c.Query("date"),
	}

	entries, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}
