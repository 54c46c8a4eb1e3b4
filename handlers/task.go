package handlers

import (
	"net/http"

	"taskpilot/models"
	"taskpilot/services/task"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskHandler exposes task CRUD endpoints scoped to the authenticated user.
type TaskHandler struct {
	TaskService task.TaskService
}

// NewTaskHandler creates a TaskHandler backed by the given service.
func NewTaskHandler(svc task.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: svc}
}

// ListTasksHandler handles GET /api/tasks.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	tasks, err := h.TaskService.ListTasks(userID)
	if err != nil {
		logger.Error("Failed to list tasks", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTaskHandler handles GET /api/tasks/:id.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	t, err := h.TaskService.GetTask(c.Param("id"), userID)
	if err != nil {
		logger.Warn("Task not found", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// CreateTaskHandler handles POST /api/tasks.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid create task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.UserID = userID

	created, err := h.TaskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Failed to create task", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateTaskHandler handles PUT /api/tasks/:id.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid update task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("id")
	req.UserID = userID

	updated, err := h.TaskService.UpdateTask(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Failed to update task", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTaskHandler handles DELETE /api/tasks/:id.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(c.Param("id"), userID); err != nil {
		logger.Warn("Failed to delete task", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
