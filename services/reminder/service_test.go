package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taskpilot/models"
)

// fakeSettingsRepo serves a fixed set of notifiable settings.
type fakeSettingsRepo struct {
	notifiable []models.ReminderSettings
	listErr    error
}

func (f *fakeSettingsRepo) GetOrCreate(userID string) (*models.ReminderSettings, error) {
	for i := range f.notifiable {
		if f.notifiable[i].UserID == userID {
			return &f.notifiable[i], nil
		}
	}
	s := models.DefaultReminderSettings(userID)
	return &s, nil
}

func (f *fakeSettingsRepo) Update(*models.ReminderSettings) error { return nil }

func (f *fakeSettingsRepo) ListNotifiable() ([]models.ReminderSettings, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.notifiable, nil
}

// fakeTaskRepo serves fixed incomplete tasks per user.
type fakeTaskRepo struct {
	byUser  map[string][]models.Task
	listErr map[string]error
}

func (f *fakeTaskRepo) Create(*models.Task) error                 { return nil }
func (f *fakeTaskRepo) Update(*models.Task) error                 { return nil }
func (f *fakeTaskRepo) Delete(id, userID string) error            { return nil }
func (f *fakeTaskRepo) GetByID(_, _ string) (*models.Task, error) { return nil, errors.New("not found") }
func (f *fakeTaskRepo) ListByUser(userID string) ([]models.Task, error) {
	return f.byUser[userID], nil
}
func (f *fakeTaskRepo) ListIncompleteByUser(userID string) ([]models.Task, error) {
	if err := f.listErr[userID]; err != nil {
		return nil, err
	}
	var incomplete []models.Task
	for _, t := range f.byUser[userID] {
		if !t.IsCompleted() {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, nil
}

// recordingDeliverer records every delivery attempt and answers with a
// per-endpoint verdict.
type recordingDeliverer struct {
	mu       sync.Mutex
	attempts []models.WebhookMessage
	urls     []string
	fail     map[string]bool
}

func (d *recordingDeliverer) Deliver(_ context.Context, url string, msg models.WebhookMessage) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempts = append(d.attempts, msg)
	d.urls = append(d.urls, url)
	return !d.fail[url]
}

func (d *recordingDeliverer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.attempts)
}

func (d *recordingDeliverer) deliveredTo(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.urls {
		if u == url {
			return true
		}
	}
	return false
}

func hourlySettings(userID, url string) models.ReminderSettings {
	return models.ReminderSettings{
		UserID:               userID,
		NotificationsEnabled: true,
		WebhookURL:           url,
		ReminderInterval:     1,
		ReminderUnit:         models.UnitHours,
	}
}

func newService(settings *fakeSettingsRepo, tasks *fakeTaskRepo, deliverer *recordingDeliverer) *Service {
	return &Service{
		Settings:      settings,
		Tasks:         tasks,
		Deliverer:     deliverer,
		SenderName:    "Taskpilot",
		MaxConcurrent: 4,
	}
}

func TestRunTickDeliversOnTheHour(t *testing.T) {
	settings := &fakeSettingsRepo{notifiable: []models.ReminderSettings{hourlySettings("u1", "https://hooks.example/u1")}}
	tasks := &fakeTaskRepo{byUser: map[string][]models.Task{
		"u1": {
			{ID: "1", Title: "first", Status: models.StatusPending, Priority: models.PriorityLow},
			{ID: "2", Title: "second", Status: models.StatusInProgress, Priority: models.PriorityHigh},
		},
	}}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, tasks, deliverer)

	svc.RunTick(context.Background(), at(10, 0))

	if deliverer.count() != 1 {
		t.Fatalf("expected exactly 1 delivery, got %d", deliverer.count())
	}
	if got := len(deliverer.attempts[0].Embeds); got != 2 {
		t.Fatalf("expected payload listing both tasks, got %d embeds", got)
	}
}

func TestRunTickSkipsOffMinute(t *testing.T) {
	settings := &fakeSettingsRepo{notifiable: []models.ReminderSettings{hourlySettings("u1", "https://hooks.example/u1")}}
	tasks := &fakeTaskRepo{byUser: map[string][]models.Task{
		"u1": {{ID: "1", Title: "first", Status: models.StatusPending, Priority: models.PriorityLow}},
	}}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, tasks, deliverer)

	svc.RunTick(context.Background(), at(10, 15))

	if deliverer.count() != 0 {
		t.Fatalf("expected no deliveries at HH:15, got %d", deliverer.count())
	}
}

func TestRunTickSkipsWhenNothingEligible(t *testing.T) {
	s := hourlySettings("u1", "https://hooks.example/u1")
	s.NotifyOnlyHighPriority = true
	settings := &fakeSettingsRepo{notifiable: []models.ReminderSettings{s}}
	tasks := &fakeTaskRepo{byUser: map[string][]models.Task{
		"u1": {{ID: "1", Title: "low only", Status: models.StatusPending, Priority: models.PriorityLow}},
	}}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, tasks, deliverer)

	svc.RunTick(context.Background(), at(10, 0))

	if deliverer.count() != 0 {
		t.Fatalf("expected no deliveries without eligible tasks, got %d", deliverer.count())
	}
}

func TestRunTickFailureIsolation(t *testing.T) {
	settings := &fakeSettingsRepo{notifiable: []models.ReminderSettings{
		hourlySettings("a", "https://hooks.example/a"),
		hourlySettings("b", "https://hooks.example/b"),
	}}
	tasks := &fakeTaskRepo{byUser: map[string][]models.Task{
		"a": {{ID: "1", Title: "a1", Status: models.StatusPending, Priority: models.PriorityLow}},
		"b": {{ID: "2", Title: "b1", Status: models.StatusPending, Priority: models.PriorityLow}},
	}}
	deliverer := &recordingDeliverer{fail: map[string]bool{"https://hooks.example/a": true}}
	svc := newService(settings, tasks, deliverer)

	svc.RunTick(context.Background(), at(10, 0))

	if !deliverer.deliveredTo("https://hooks.example/b") {
		t.Error("user b must still get a delivery attempt when user a fails")
	}
	if deliverer.count() != 2 {
		t.Fatalf("expected 2 attempts, got %d", deliverer.count())
	}
}

func TestRunTickTaskListFailureSkipsOnlyThatUser(t *testing.T) {
	settings := &fakeSettingsRepo{notifiable: []models.ReminderSettings{
		hourlySettings("a", "https://hooks.example/a"),
		hourlySettings("b", "https://hooks.example/b"),
	}}
	tasks := &fakeTaskRepo{
		byUser: map[string][]models.Task{
			"b": {{ID: "2", Title: "b1", Status: models.StatusPending, Priority: models.PriorityLow}},
		},
		listErr: map[string]error{"a": errors.New("store down")},
	}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, tasks, deliverer)

	svc.RunTick(context.Background(), at(10, 0))

	if deliverer.count() != 1 || !deliverer.deliveredTo("https://hooks.example/b") {
		t.Fatalf("expected only user b delivery, got %d to %v", deliverer.count(), deliverer.urls)
	}
}

func TestRunTickSettingsListFailureAbortsTick(t *testing.T) {
	settings := &fakeSettingsRepo{listErr: errors.New("store down")}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, &fakeTaskRepo{}, deliverer)

	svc.RunTick(context.Background(), at(10, 0))

	if deliverer.count() != 0 {
		t.Fatalf("expected aborted tick, got %d deliveries", deliverer.count())
	}
}

func TestRunTickNoDeduplicationAcrossTicks(t *testing.T) {
	settings := &fakeSettingsRepo{notifiable: []models.ReminderSettings{hourlySettings("u1", "https://hooks.example/u1")}}
	tasks := &fakeTaskRepo{byUser: map[string][]models.Task{
		"u1": {{ID: "1", Title: "nag me", Status: models.StatusPending, Priority: models.PriorityLow}},
	}}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, tasks, deliverer)

	// Two qualifying ticks with unchanged data produce two deliveries.
	now := at(10, 0)
	svc.RunTick(context.Background(), now)
	svc.RunTick(context.Background(), now)

	if deliverer.count() != 2 {
		t.Fatalf("expected 2 deliveries across 2 ticks, got %d", deliverer.count())
	}
}

func TestRunTickSkipsNonActionableSettings(t *testing.T) {
	s := hourlySettings("u1", "")
	settings := &fakeSettingsRepo{notifiable: []models.ReminderSettings{s}}
	tasks := &fakeTaskRepo{byUser: map[string][]models.Task{
		"u1": {{ID: "1", Title: "t", Status: models.StatusPending, Priority: models.PriorityLow}},
	}}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, tasks, deliverer)

	svc.RunTick(context.Background(), at(10, 0))

	if deliverer.count() != 0 {
		t.Fatalf("policy without an endpoint must be skipped, got %d deliveries", deliverer.count())
	}
}

func TestRunTickConcurrentUsersAllProcessed(t *testing.T) {
	var all []models.ReminderSettings
	byUser := map[string][]models.Task{}
	for _, id := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		all = append(all, hourlySettings(id, "https://hooks.example/"+id))
		byUser[id] = []models.Task{{ID: id + "-t", Title: id, Status: models.StatusPending, Priority: models.PriorityHigh}}
	}
	settings := &fakeSettingsRepo{notifiable: all}
	deliverer := &recordingDeliverer{}
	svc := newService(settings, &fakeTaskRepo{byUser: byUser}, deliverer)
	svc.MaxConcurrent = 2

	done := make(chan struct{})
	go func() {
		svc.RunTick(context.Background(), at(10, 0))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tick did not finish")
	}

	if deliverer.count() != 6 {
		t.Fatalf("expected 6 deliveries, got %d", deliverer.count())
	}
}
