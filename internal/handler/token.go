package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintenance-system/maintenance-service/internal/auth"
	"github.com/maintenance-system/maintenance-service/internal/errs"
	"github.com/maintenance-system/maintenance-service/internal/service"
)

type TokenHandler struct {
	users  service.UserAuthenticator
	tokens *auth.Manager
}

func NewTokenHandler(users service.UserAuthenticator, tokens *auth.Manager) *TokenHandler {
	return &TokenHandler{users: users, tokens: tokens}
}

type obtainBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Obtain exchanges credentials for an access/refresh pair.
func (h *TokenHandler) Obtain(c *gin.Context) {
	var req obtainBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	access, refresh, err := h.tokens.IssuePair(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to issue tokens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

type refreshBody struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Refresh issues a new access token from a refresh token.
func (h *TokenHandler) Refresh(c *gin.Context) {
	var req refreshBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "refresh is required"})
		return
	}
	access, err := h.tokens.Refresh(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
