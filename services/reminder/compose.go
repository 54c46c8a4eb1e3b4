package reminder

import (
	"fmt"
	"math"
	"sort"
	"time"

	"taskpilot/models"
	"taskpilot/services/webhook"
)

// ComposeReminder builds the webhook payload for one user's reminder. It is
// pure: no I/O, deterministic for a given (now, tasks, settings).
//
// Tasks with a due date come first, soonest due date leading; tasks without
// one keep their incoming order at the end (the sort is stable).
func ComposeReminder(now time.Time, tasks []models.Task, settings *models.ReminderSettings, sender string) models.WebhookMessage {
	ordered := make([]models.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].DueDate, ordered[j].DueDate
		switch {
		case a != nil && b != nil:
			return a.Before(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})

	content := webhook.MentionPrefix(settings) +
		fmt.Sprintf("⏰ You have %d pending task%s", len(ordered), plural(len(ordered)))

	embeds := make([]models.WebhookEmbed, 0, len(ordered))
	for _, t := range ordered {
		embed := models.WebhookEmbed{
			Title:       webhook.PriorityEmoji(t.Priority) + " " + t.Title,
			Description: t.Description,
			Color:       webhook.PriorityColor(t.Priority),
			Timestamp:   now.UTC().Format(time.RFC3339),
			Footer:      &models.WebhookEmbedFooter{Text: sender},
		}
		if t.DueDate != nil {
			embed.Fields = append(embed.Fields, models.WebhookEmbedField{
				Name:   "📅 Due",
				Value:  fmt.Sprintf("%s (%s)", t.DueDate.Format("Jan 2, 2006"), dueAnnotation(now, *t.DueDate)),
				Inline: true,
			})
		}
		embeds = append(embeds, embed)
	}

	return models.WebhookMessage{
		Content:  content,
		Embeds:   embeds,
		Username: sender,
	}
}

// dueAnnotation renders the relative-day phrase for a due date:
// today, tomorrow, "in N days", or "overdue by N days".
func dueAnnotation(now, due time.Time) string {
	days := relativeDueDays(now, due)
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %d day%s", -days, plural(-days))
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// relativeDueDays computes ceil((due - now) / 24h).
func relativeDueDays(now, due time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// plural returns "s" if n is not 1, otherwise returns an empty string.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
