package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskpilot/config"
	"taskpilot/database"
	settingsRepoPkg "taskpilot/database/repository/settings"
	taskRepoPkg "taskpilot/database/repository/task"
	userRepoPkg "taskpilot/database/repository/user"
	"taskpilot/handlers"
	"taskpilot/middleware"
	"taskpilot/routes"
	"taskpilot/services/reminder"
	"taskpilot/services/settings"
	"taskpilot/services/task"
	"taskpilot/services/user"
	"taskpilot/services/webhook"
	"taskpilot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	taskRepo := taskRepoPkg.NewMongoTaskRepo()
	settingsRepo := settingsRepoPkg.NewMongoSettingsRepo()

	// outbound webhook transport with a bounded delivery timeout.
	deliverer := webhook.NewClient(time.Duration(config.AppConfig.WebhookTimeoutSec) * time.Second)
	sender := config.AppConfig.WebhookSenderName

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	taskService := &task.DefaultTaskService{
		Repo:       taskRepo,
		Settings:   settingsRepo,
		Deliverer:  deliverer,
		SenderName: sender,
	}
	settingsService := &settings.DefaultSettingsService{
		Repo:       settingsRepo,
		Deliverer:  deliverer,
		SenderName: sender,
	}
	reminderService := &reminder.Service{
		Settings:      settingsRepo,
		Tasks:         taskRepo,
		Deliverer:     deliverer,
		SenderName:    sender,
		MaxConcurrent: config.AppConfig.ReminderMaxConcurrent,
	}

	// Start the reminder scheduler: one shared minute-aligned timer drives
	// evaluation of all users' policies.
	scheduler := reminder.NewScheduler(func(now time.Time) {
		reminderService.RunTick(context.Background(), now)
	})
	if err := scheduler.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder scheduler: %v", err)
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Auth:     handlers.NewAuthHandler(userService),
		User:     handlers.NewUserHandler(userService),
		Task:     handlers.NewTaskHandler(taskService),
		Settings: handlers.NewSettingsHandler(settingsService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop taking ticks first, letting any in-flight deliveries finish.
	scheduler.Stop(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
