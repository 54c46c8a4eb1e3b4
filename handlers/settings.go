package handlers

import (
	"net/http"

	"taskpilot/services/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler exposes reminder-settings endpoints.
type SettingsHandler struct {
	SettingsService settings.SettingsService
}

// NewSettingsHandler creates a SettingsHandler backed by the given service.
func NewSettingsHandler(svc settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{SettingsService: svc}
}

// GetSettingsHandler handles GET /api/settings. A first fetch creates the
// default settings document.
func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	s, err := h.SettingsService.GetSettings(userID)
	if err != nil {
		logger.Error("Failed to fetch settings", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// UpdateSettingsHandler handles PUT /api/settings.
func (h *SettingsHandler) UpdateSettingsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req settings.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid settings update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.SettingsService.UpdateSettings(userID, req)
	if err != nil {
		logger.Warn("Failed to update settings", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// TestNotificationHandler handles POST /api/notifications/test. It delivers a
// test message to the caller's configured webhook and reports the outcome.
func (h *SettingsHandler) TestNotificationHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	delivered, err := h.SettingsService.SendTestNotification(c.Request.Context(), userID)
	if err != nil {
		logger.Warn("Test notification failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !delivered {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Webhook endpoint rejected the test notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test notification sent"})
}
