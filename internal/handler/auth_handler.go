package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/service"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
	"github.com/nyatsime/portal-api/pkg/response"
)

// AuthHandler wires the three login surfaces to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// LoginStaff authenticates teachers, admins and the master account.
func (h *AuthHandler) LoginStaff(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.LoginStaff(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": res.User, "token": res.Token})
}

// LoginLearner authenticates approved learners and the master account.
func (h *AuthHandler) LoginLearner(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.LoginLearner(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": res.User, "token": res.Token})
}

// LoginMaster authenticates the master account only.
func (h *AuthHandler) LoginMaster(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.LoginMaster(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": res.User, "token": res.Token})
}

// Me returns the identity embedded in the access token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
	})
}

// Logout acknowledges the client discarding its token. Tokens are
// stateless, so there is nothing to revoke server side.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "Logged out."})
}
