package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/pkg/response"
)

// classList is the fixed set of classes the school runs. The portal
// treats it as static data rather than a database table.
var classList = []string{
	"Form 1A", "Form 1B", "Form 2A", "Form 2B", "Form 3A", "Form 3B",
	"Form 4A", "Form 4B", "Form 5", "Form 6 Lower", "Form 6 Upper",
	"Grade 7A", "Grade 7B",
}

// GradeHandler serves the class list.
type GradeHandler struct{}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler() *GradeHandler {
	return &GradeHandler{}
}

// List returns all class names.
func (h *GradeHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, classList)
}
