package reminder

import (
	"context"
	"sync"
	"time"

	settingsRepo "taskpilot/database/repository/settings"
	taskRepo "taskpilot/database/repository/task"
	"taskpilot/models"
	"taskpilot/services/webhook"
	"taskpilot/utils"

	"go.uber.org/zap"
)

// Service is the tick orchestrator. Each RunTick walks every notifiable
// settings document and, per user, runs fetch → filter → due check →
// compose → deliver. Users are independent: one user's failure never
// prevents another's delivery, and no state is carried between ticks.
type Service struct {
	Settings      settingsRepo.SettingsRepository
	Tasks         taskRepo.TaskRepository
	Deliverer     webhook.Deliverer
	SenderName    string
	MaxConcurrent int
}

// RunTick evaluates all reminder policies for the given instant. If the
// settings listing fails the whole tick is abandoned (logged, never fatal);
// a single user's task listing or delivery failure only skips that user.
func (s *Service) RunTick(ctx context.Context, now time.Time) {
	logger := utils.GetLogger()

	all, err := s.Settings.ListNotifiable()
	if err != nil {
		logger.Error("reminder: failed to list notifiable settings, skipping tick", zap.Error(err))
		return
	}
	if len(all) == 0 {
		return
	}
	logger.Debug("reminder: tick started",
		zap.Time("now", now),
		zap.Int("users", len(all)))

	limit := s.MaxConcurrent
	if limit <= 0 {
		limit = 8
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for _, settings := range all {
		settings := settings
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("reminder: panic while processing user",
						zap.String("userId", settings.UserID),
						zap.Any("panic", r))
				}
			}()
			s.processUser(ctx, now, &settings)
		}()
	}
	wg.Wait()
}

// processUser runs the per-user pipeline, strictly sequential for that user.
func (s *Service) processUser(ctx context.Context, now time.Time, settings *models.ReminderSettings) {
	logger := utils.GetLogger()

	if !settings.Actionable() {
		// Not expected from ListNotifiable, but a policy missing its
		// endpoint is simply not actionable.
		return
	}

	tasks, err := s.Tasks.ListIncompleteByUser(settings.UserID)
	if err != nil {
		logger.Error("reminder: failed to list tasks for user",
			zap.String("userId", settings.UserID),
			zap.Error(err))
		return
	}
	if len(tasks) == 0 {
		return
	}

	eligible := EligibleTasks(tasks, settings)
	if len(eligible) == 0 {
		logger.Debug("reminder: no tasks meet reminder criteria",
			zap.String("userId", settings.UserID))
		return
	}

	if !ShouldFire(now, settings.ReminderInterval, settings.ReminderUnit) {
		return
	}

	msg := ComposeReminder(now, eligible, settings, s.SenderName)
	if ok := s.Deliverer.Deliver(ctx, settings.WebhookURL, msg); ok {
		logger.Info("reminder: sent",
			zap.String("userId", settings.UserID),
			zap.Int("tasks", len(eligible)))
	} else {
		logger.Warn("reminder: delivery failed",
			zap.String("userId", settings.UserID))
	}
}
