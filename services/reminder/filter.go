package reminder

import "taskpilot/models"

// EligibleTasks returns the subset of tasks that qualify for a reminder under
// the given settings: completed tasks are always dropped, and when the user
// asked for high-priority-only reminders everything else is dropped too.
// An empty result means "skip dispatch", never an error.
func EligibleTasks(tasks []models.Task, settings *models.ReminderSettings) []models.Task {
	var eligible []models.Task
	for _, t := range tasks {
		if t.IsCompleted() {
			continue
		}
		if settings.NotifyOnlyHighPriority && t.Priority != models.PriorityHigh {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}
