package reminder

import (
	"strings"
	"testing"
	"time"

	"taskpilot/models"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestComposeReminderOrdering(t *testing.T) {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{Title: "A", Priority: models.PriorityLow, DueDate: datePtr(now.Add(3 * 24 * time.Hour))},
		{Title: "B", Priority: models.PriorityLow},
		{Title: "C", Priority: models.PriorityLow, DueDate: datePtr(now.Add(24 * time.Hour))},
	}

	msg := ComposeReminder(now, tasks, &models.ReminderSettings{}, "Taskpilot")
	if len(msg.Embeds) != 3 {
		t.Fatalf("expected 3 embeds, got %d", len(msg.Embeds))
	}

	var titles []string
	for _, e := range msg.Embeds {
		titles = append(titles, strings.TrimSpace(strings.TrimPrefix(e.Title, "🟢")))
	}
	want := []string{"C", "A", "B"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("embed order = %v, want %v", titles, want)
		}
	}
}

func TestComposeReminderStableForUndated(t *testing.T) {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{Title: "first", Priority: models.PriorityLow},
		{Title: "second", Priority: models.PriorityLow},
		{Title: "third", Priority: models.PriorityLow},
	}

	msg := ComposeReminder(now, tasks, &models.ReminderSettings{}, "Taskpilot")
	for i, want := range []string{"first", "second", "third"} {
		if !strings.Contains(msg.Embeds[i].Title, want) {
			t.Fatalf("undated order not preserved: embed %d = %q", i, msg.Embeds[i].Title)
		}
	}
}

func TestDueAnnotation(t *testing.T) {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		due  time.Time
		want string
	}{
		{"exactly now", now, "today"},
		{"tomorrow", now.Add(24 * time.Hour), "tomorrow"},
		{"in three days", now.Add(3 * 24 * time.Hour), "in 3 days"},
		{"overdue two days", now.Add(-2 * 24 * time.Hour), "overdue by 2 days"},
		{"overdue one day", now.Add(-24 * time.Hour), "overdue by 1 day"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dueAnnotation(now, tc.due); got != tc.want {
				t.Errorf("dueAnnotation = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestComposeReminderHeaderCount(t *testing.T) {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	one := []models.Task{{Title: "solo", Priority: models.PriorityHigh}}
	two := append(one, models.Task{Title: "pair", Priority: models.PriorityLow})

	if msg := ComposeReminder(now, one, &models.ReminderSettings{}, "Taskpilot"); !strings.Contains(msg.Content, "1 pending task") || strings.Contains(msg.Content, "tasks") {
		t.Errorf("singular header wrong: %q", msg.Content)
	}
	if msg := ComposeReminder(now, two, &models.ReminderSettings{}, "Taskpilot"); !strings.Contains(msg.Content, "2 pending tasks") {
		t.Errorf("plural header wrong: %q", msg.Content)
	}
}

func TestComposeReminderMention(t *testing.T) {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	tasks := []models.Task{{Title: "solo", Priority: models.PriorityHigh}}

	withMention := &models.ReminderSettings{MentionUser: true, UserMention: "@123456"}
	msg := ComposeReminder(now, tasks, withMention, "Taskpilot")
	if !strings.HasPrefix(msg.Content, "<@123456> ") {
		t.Errorf("mention prefix missing: %q", msg.Content)
	}

	noHandle := &models.ReminderSettings{MentionUser: true}
	msg = ComposeReminder(now, tasks, noHandle, "Taskpilot")
	if strings.Contains(msg.Content, "<@") {
		t.Errorf("mention must be omitted without a handle: %q", msg.Content)
	}

	mentionOff := &models.ReminderSettings{UserMention: "@123456"}
	msg = ComposeReminder(now, tasks, mentionOff, "Taskpilot")
	if strings.Contains(msg.Content, "<@") {
		t.Errorf("mention must be omitted when disabled: %q", msg.Content)
	}
}

func TestComposeReminderMarkersAndColors(t *testing.T) {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{Title: "h", Priority: models.PriorityHigh},
		{Title: "m", Priority: models.PriorityMedium},
		{Title: "l", Priority: models.PriorityLow},
		{Title: "u", Priority: "urgent-ish"},
	}

	msg := ComposeReminder(now, tasks, &models.ReminderSettings{}, "Taskpilot")
	wantMarker := []string{"🔴", "🟡", "🟢", "⚪"}
	wantColor := []int{0xff0000, 0xffff00, 0x00ff00, 0x5865F2}
	for i := range tasks {
		if !strings.HasPrefix(msg.Embeds[i].Title, wantMarker[i]) {
			t.Errorf("embed %d marker = %q, want prefix %q", i, msg.Embeds[i].Title, wantMarker[i])
		}
		if msg.Embeds[i].Color != wantColor[i] {
			t.Errorf("embed %d color = %#x, want %#x", i, msg.Embeds[i].Color, wantColor[i])
		}
	}
}

func TestComposeReminderDoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{Title: "undated", Priority: models.PriorityLow},
		{Title: "dated", Priority: models.PriorityLow, DueDate: datePtr(now.Add(time.Hour))},
	}

	ComposeReminder(now, tasks, &models.ReminderSettings{}, "Taskpilot")
	if tasks[0].Title != "undated" || tasks[1].Title != "dated" {
		t.Error("input slice was reordered")
	}
}
