package task

import (
	"context"
	"fmt"

	settingsRepo "taskpilot/database/repository/settings"
	taskRepo "taskpilot/database/repository/task"
	"taskpilot/models"
	"taskpilot/services/webhook"
	"taskpilot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService defines task CRUD for the API surface.
type TaskService interface {
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (*models.Task, error)
	DeleteTask(id, userID string) error
	GetTask(id, userID string) (*models.Task, error)
	ListTasks(userID string) ([]models.Task, error)
}

// DefaultTaskService is the production implementation. Besides CRUD it sends
// a best-effort "task created" webhook notice when the owner has
// notifications configured.
type DefaultTaskService struct {
	Repo       taskRepo.TaskRepository
	Settings   settingsRepo.SettingsRepository
	Deliverer  webhook.Deliverer
	SenderName string
}

// CreateTask validates and stores a new task owned by userID.
func (s *DefaultTaskService) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	if task.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if task.UserID == "" {
		return nil, fmt.Errorf("task owner is required")
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(task.Priority) {
		return nil, fmt.Errorf("invalid priority %q", task.Priority)
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if !models.ValidStatus(task.Status) {
		return nil, fmt.Errorf("invalid status %q", task.Status)
	}

	task.ID = uuid.NewString()
	if err := s.Repo.Create(&task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifyCreated(ctx, &task)
	return &task, nil
}

// UpdateTask validates and stores changes to an existing task.
func (s *DefaultTaskService) UpdateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	if task.ID == "" || task.UserID == "" {
		return nil, fmt.Errorf("task id and owner are required")
	}
	if task.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !models.ValidPriority(task.Priority) {
		return nil, fmt.Errorf("invalid priority %q", task.Priority)
	}
	if !models.ValidStatus(task.Status) {
		return nil, fmt.Errorf("invalid status %q", task.Status)
	}

	existing, err := s.Repo.GetByID(task.ID, task.UserID)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task owned by userID.
func (s *DefaultTaskService) DeleteTask(id, userID string) error {
	return s.Repo.Delete(id, userID)
}

// GetTask fetches a single task owned by userID.
func (s *DefaultTaskService) GetTask(id, userID string) (*models.Task, error) {
	return s.Repo.GetByID(id, userID)
}

// ListTasks fetches all of a user's tasks.
func (s *DefaultTaskService) ListTasks(userID string) ([]models.Task, error) {
	return s.Repo.ListByUser(userID)
}

// notifyCreated sends the "task created" notice when the owner has an
// actionable webhook configuration. Failures are logged and swallowed; task
// creation never depends on webhook delivery.
func (s *DefaultTaskService) notifyCreated(ctx context.Context, task *models.Task) {
	logger := utils.GetLogger()

	settings, err := s.Settings.GetOrCreate(task.UserID)
	if err != nil {
		logger.Warn("task: could not load settings for creation notice",
			zap.String("userId", task.UserID),
			zap.Error(err))
		return
	}
	if !settings.Actionable() {
		return
	}

	msg := webhook.NewTaskMessage(task, settings, s.SenderName)
	if ok := s.Deliverer.Deliver(ctx, settings.WebhookURL, msg); !ok {
		logger.Warn("task: creation notice delivery failed",
			zap.String("userId", task.UserID),
			zap.String("taskId", task.ID))
	}
}
