package models

import "time"

// Reminder cadence units.
const (
	UnitMinutes = "minutes"
	UnitHours   = "hours"
	UnitDays    = "days"
)

// ReminderSettings is the per-user reminder policy. A settings document is
// created lazily with defaults on first fetch and is inert until the user
// enables notifications and configures a webhook URL.
type ReminderSettings struct {
	UserID                 string    `bson:"userId" json:"userId"`
	NotificationsEnabled   bool      `bson:"notificationsEnabled" json:"notificationsEnabled"`
	WebhookURL             string    `bson:"webhookUrl" json:"webhookUrl"`
	MentionUser            bool      `bson:"mentionUser" json:"mentionUser"`
	UserMention            string    `bson:"userMention" json:"userMention"`
	NotifyOnlyHighPriority bool      `bson:"notifyOnlyHighPriority" json:"notifyOnlyHighPriority"`
	ReminderInterval       int       `bson:"reminderInterval" json:"reminderInterval"`
	ReminderUnit           string    `bson:"reminderUnit" json:"reminderUnit"`
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DefaultReminderSettings returns the settings document created on first
// fetch for a user that has none.
func DefaultReminderSettings(userID string) ReminderSettings {
	now := time.Now()
	return ReminderSettings{
		UserID:               userID,
		NotificationsEnabled: false,
		ReminderInterval:     1,
		ReminderUnit:         UnitHours,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Normalize applies defaulting rules for fields that may be missing or out of
// range on stored documents. It is called once, at the repository read
// boundary, so call sites never re-default.
func (s *ReminderSettings) Normalize() {
	if s.ReminderInterval <= 0 {
		s.ReminderInterval = 1
	}
	if !ValidReminderUnit(s.ReminderUnit) {
		s.ReminderUnit = UnitHours
	}
}

// Actionable reports whether the policy can produce a delivery at all.
func (s *ReminderSettings) Actionable() bool {
	return s.NotificationsEnabled && s.WebhookURL != ""
}

// ValidReminderUnit reports whether u is one of the known cadence units.
func ValidReminderUnit(u string) bool {
	return u == UnitMinutes || u == UnitHours || u == UnitDays
}
