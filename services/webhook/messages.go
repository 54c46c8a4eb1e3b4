package webhook

import (
	"strings"
	"time"

	"taskpilot/models"
)

// Priority colors and markers shared by every webhook message builder.
var (
	priorityColors = map[string]int{
		models.PriorityLow:    0x00ff00,
		models.PriorityMedium: 0xffff00,
		models.PriorityHigh:   0xff0000,
	}

	priorityEmojis = map[string]string{
		models.PriorityLow:    "🟢",
		models.PriorityMedium: "🟡",
		models.PriorityHigh:   "🔴",
	}
)

const fallbackColor = 0x5865F2

// PriorityEmoji returns the marker for a priority, with a neutral fallback
// for unknown values.
func PriorityEmoji(priority string) string {
	if e, ok := priorityEmojis[priority]; ok {
		return e
	}
	return "⚪"
}

// PriorityColor returns the embed color for a priority.
func PriorityColor(priority string) int {
	if c, ok := priorityColors[priority]; ok {
		return c
	}
	return fallbackColor
}

// MentionPrefix builds the leading mention text, or "" when mentions are off
// or no handle is configured.
func MentionPrefix(settings *models.ReminderSettings) string {
	if settings == nil || !settings.MentionUser || settings.UserMention == "" {
		return ""
	}
	return "<@" + strings.TrimPrefix(settings.UserMention, "@") + "> "
}

// NewTaskMessage builds the notice sent when a task is created.
func NewTaskMessage(task *models.Task, settings *models.ReminderSettings, sender string) models.WebhookMessage {
	embed := models.WebhookEmbed{
		Title:       PriorityEmoji(task.Priority) + " " + task.Title,
		Description: task.Description,
		Color:       PriorityColor(task.Priority),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      &models.WebhookEmbedFooter{Text: sender},
	}

	if task.DueDate != nil {
		embed.Fields = append(embed.Fields, models.WebhookEmbedField{
			Name:   "📅 Due Date",
			Value:  task.DueDate.Format("Jan 2, 2006"),
			Inline: true,
		})
	}
	embed.Fields = append(embed.Fields, models.WebhookEmbedField{
		Name:   "🎯 Priority",
		Value:  capitalize(task.Priority),
		Inline: true,
	})

	return models.WebhookMessage{
		Content:  MentionPrefix(settings) + "📋 New task created!",
		Embeds:   []models.WebhookEmbed{embed},
		Username: sender,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TestMessage builds the payload for the webhook connectivity check.
func TestMessage(settings *models.ReminderSettings, sender string) models.WebhookMessage {
	return models.WebhookMessage{
		Content: MentionPrefix(settings) + "🧪 Test notification from " + sender,
		Embeds: []models.WebhookEmbed{{
			Title:       "🔔 Test Notification",
			Description: "This is a test notification. Your webhook is working correctly.",
			Color:       fallbackColor,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Footer:      &models.WebhookEmbedFooter{Text: sender},
		}},
		Username: sender,
	}
}
