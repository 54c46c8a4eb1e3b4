package handlers

import (
	"net/http"

	"taskpilot/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes profile endpoints.
type UserHandler struct {
	UserService user.UserService
}

// NewUserHandler creates a UserHandler backed by the given service.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	profile, err := h.UserService.GetUserByID(userID)
	if err != nil {
		logger.Error("Failed to get user profile", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
