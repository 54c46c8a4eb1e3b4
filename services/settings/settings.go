package settings

import (
	"context"
	"fmt"
	"net/url"

	settingsRepo "taskpilot/database/repository/settings"
	"taskpilot/models"
	"taskpilot/services/webhook"
)

// UpdateRequest carries the user-editable settings fields.
type UpdateRequest struct {
	NotificationsEnabled   bool   `json:"notificationsEnabled"`
	WebhookURL             string `json:"webhookUrl"`
	MentionUser            bool   `json:"mentionUser"`
	UserMention            string `json:"userMention"`
	NotifyOnlyHighPriority bool   `json:"notifyOnlyHighPriority"`
	ReminderInterval       int    `json:"reminderInterval"`
	ReminderUnit           string `json:"reminderUnit"`
}

// SettingsService defines reminder-settings operations for the API surface.
type SettingsService interface {
	GetSettings(userID string) (*models.ReminderSettings, error)
	UpdateSettings(userID string, req UpdateRequest) (*models.ReminderSettings, error)
	SendTestNotification(ctx context.Context, userID string) (bool, error)
}

// DefaultSettingsService is the production implementation.
type DefaultSettingsService struct {
	Repo       settingsRepo.SettingsRepository
	Deliverer  webhook.Deliverer
	SenderName string
}

// GetSettings returns the user's settings, creating defaults on first fetch.
func (s *DefaultSettingsService) GetSettings(userID string) (*models.ReminderSettings, error) {
	return s.Repo.GetOrCreate(userID)
}

// UpdateSettings validates and stores the user's reminder configuration.
func (s *DefaultSettingsService) UpdateSettings(userID string, req UpdateRequest) (*models.ReminderSettings, error) {
	if req.ReminderInterval <= 0 {
		return nil, fmt.Errorf("reminderInterval must be positive")
	}
	if !models.ValidReminderUnit(req.ReminderUnit) {
		return nil, fmt.Errorf("reminderUnit must be one of minutes, hours, days")
	}
	if req.NotificationsEnabled && req.WebhookURL == "" {
		return nil, fmt.Errorf("webhookUrl is required when notifications are enabled")
	}
	if req.WebhookURL != "" {
		u, err := url.Parse(req.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("webhookUrl must be a valid http(s) URL")
		}
	}

	current, err := s.Repo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	current.NotificationsEnabled = req.NotificationsEnabled
	current.WebhookURL = req.WebhookURL
	current.MentionUser = req.MentionUser
	current.UserMention = req.UserMention
	current.NotifyOnlyHighPriority = req.NotifyOnlyHighPriority
	current.ReminderInterval = req.ReminderInterval
	current.ReminderUnit = req.ReminderUnit

	if err := s.Repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

// SendTestNotification delivers the connectivity-check message to the user's
// configured webhook and reports whether the endpoint accepted it.
func (s *DefaultSettingsService) SendTestNotification(ctx context.Context, userID string) (bool, error) {
	current, err := s.Repo.GetOrCreate(userID)
	if err != nil {
		return false, err
	}
	if current.WebhookURL == "" {
		return false, fmt.Errorf("no webhook URL configured")
	}

	msg := webhook.TestMessage(current, s.SenderName)
	return s.Deliverer.Deliver(ctx, current.WebhookURL, msg), nil
}
