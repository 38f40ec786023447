package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/service"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/response"
)

// LibraryHandler exposes the textbook catalogue and circulation.
type LibraryHandler struct {
	library *service.LibraryService
}

// NewLibraryHandler constructs LibraryHandler.
func NewLibraryHandler(library *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// AddTextbook registers a title in the catalogue.
func (h *LibraryHandler) AddTextbook(c *gin.Context) {
	var req service.AddTextbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	book, err := h.library.AddTextbook(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book_id": book.BookID})
}

// ListTextbooks returns the catalogue.
func (h *LibraryHandler) ListTextbooks(c *gin.Context) {
	books, err := h.library.ListTextbooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// Issue opens a loan and bumps the title's issued count.
func (h *LibraryHandler) Issue(c *gin.Context) {
	var req service.IssueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && req.IssuedBy == "" {
		req.IssuedBy = claims.UserID
	}

	issue, err := h.library.Issue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"issue_id": issue.IssueID})
}

// Return closes a loan. Returning an already-returned issue is a 404.
func (h *LibraryHandler) Return(c *gin.Context) {
	var req service.ReturnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.library.Return(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListIssues returns loans, optionally for one learner.
func (h *LibraryHandler) ListIssues(c *gin.Context) {
	issues, err := h.library.ListIssues(c.Request.Context(), c.Query("learner_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, issues)
}
