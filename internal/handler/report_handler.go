package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/service"
	"github.com/nyatsime/portal-api/pkg/response"
)

// ReportHandler serves learner report cards.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Get returns a learner's report card as JSON.
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reports.Build(c.Request.Context(), c.Param("id"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// PDF returns a learner's report card as a downloadable PDF.
func (h *ReportHandler) PDF(c *gin.Context) {
	learnerID := c.Param("id")
	data, err := h.reports.BuildPDF(c.Request.Context(), learnerID, c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("report-%s.pdf", learnerID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
