package webhook

import (
	"strings"
	"testing"
	"time"

	"taskpilot/models"
)

func TestMentionPrefix(t *testing.T) {
	cases := []struct {
		name     string
		settings *models.ReminderSettings
		want     string
	}{
		{"nil settings", nil, ""},
		{"disabled", &models.ReminderSettings{UserMention: "@42"}, ""},
		{"enabled without handle", &models.ReminderSettings{MentionUser: true}, ""},
		{"handle with at sign", &models.ReminderSettings{MentionUser: true, UserMention: "@42"}, "<@42> "},
		{"bare handle", &models.ReminderSettings{MentionUser: true, UserMention: "42"}, "<@42> "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MentionPrefix(tc.settings); got != tc.want {
				t.Errorf("MentionPrefix = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPriorityMarkers(t *testing.T) {
	if PriorityEmoji(models.PriorityHigh) != "🔴" || PriorityColor(models.PriorityHigh) != 0xff0000 {
		t.Error("high priority marker/color wrong")
	}
	if PriorityEmoji("nonsense") != "⚪" {
		t.Error("unknown priority must use the fallback marker")
	}
	if PriorityColor("nonsense") != 0x5865F2 {
		t.Error("unknown priority must use the fallback color")
	}
}

func TestNewTaskMessage(t *testing.T) {
	due := time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)
	task := &models.Task{
		Title:       "Ship release",
		Description: "cut the tag",
		Priority:    models.PriorityHigh,
		DueDate:     &due,
	}
	settings := &models.ReminderSettings{MentionUser: true, UserMention: "@7"}

	msg := NewTaskMessage(task, settings, "Taskpilot")
	if !strings.HasPrefix(msg.Content, "<@7> ") || !strings.Contains(msg.Content, "New task created") {
		t.Errorf("content wrong: %q", msg.Content)
	}
	if len(msg.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(msg.Embeds))
	}
	embed := msg.Embeds[0]
	if !strings.HasPrefix(embed.Title, "🔴") {
		t.Errorf("embed title missing priority marker: %q", embed.Title)
	}
	if len(embed.Fields) != 2 {
		t.Fatalf("expected due date and priority fields, got %d", len(embed.Fields))
	}
	if embed.Fields[0].Value != "Apr 2, 2025" {
		t.Errorf("due date field = %q", embed.Fields[0].Value)
	}
	if embed.Fields[1].Value != "High" {
		t.Errorf("priority field = %q", embed.Fields[1].Value)
	}
}

func TestNewTaskMessageWithoutDueDate(t *testing.T) {
	task := &models.Task{Title: "Someday", Priority: models.PriorityLow}

	msg := NewTaskMessage(task, nil, "Taskpilot")
	if len(msg.Embeds[0].Fields) != 1 {
		t.Fatalf("expected only the priority field, got %d", len(msg.Embeds[0].Fields))
	}
}

func TestTestMessage(t *testing.T) {
	msg := TestMessage(nil, "Taskpilot")
	if !strings.Contains(msg.Content, "Test notification") {
		t.Errorf("content wrong: %q", msg.Content)
	}
	if msg.Username != "Taskpilot" || len(msg.Embeds) != 1 {
		t.Errorf("message shape wrong: %+v", msg)
	}
}
