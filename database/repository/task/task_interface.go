package taskRepo

import "taskpilot/models"

// TaskRepository defines persistence operations for tasks. The reminder core
// only ever reads through ListIncompleteByUser; mutation belongs to the API
// surface.
type TaskRepository interface {
	Create(task *models.Task) error
	Update(task *models.Task) error
	Delete(id, userID string) error
	GetByID(id, userID string) (*models.Task, error)
	ListByUser(userID string) ([]models.Task, error)
	ListIncompleteByUser(userID string) ([]models.Task, error)
}
