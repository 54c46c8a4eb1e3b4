package settingsRepo

import "taskpilot/models"

// SettingsRepository defines persistence operations for per-user reminder
// settings. GetOrCreate applies the lazy-default rule; every read path runs
// Normalize so callers never see an interval <= 0 or an unknown unit.
type SettingsRepository interface {
	GetOrCreate(userID string) (*models.ReminderSettings, error)
	Update(settings *models.ReminderSettings) error
	ListNotifiable() ([]models.ReminderSettings, error)
}
