package handlers

import (
	"errors"
	"net/http"

	"github.com/shreyasboddani/MENTICS/internal/middleware"
	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/realtime"
	"github.com/shreyasboddani/MENTICS/internal/services"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the path and task management endpoints.
type TaskHandler struct {
	tasks        *services.TaskService
	orchestrator *services.Orchestrator
	paths        *PathCache
	hub          *realtime.Hub
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks *services.TaskService, orchestrator *services.Orchestrator, paths *PathCache, hub *realtime.Hub) *TaskHandler {
	return &TaskHandler{
		tasks:        tasks,
		orchestrator: orchestrator,
		paths:        paths,
		hub:          hub,
	}
}

func categoryParam(c *gin.Context) string {
	category := c.Query("category")
	if category == "" {
		category = models.CategoryTestPrep
	}
	return category
}

// GetTasks handles GET /api/tasks?category=
// Returns the active path with subtasks; when no path is active yet,
// one is generated transparently.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	category := categoryParam(c)

	if views, ok := h.paths.Get(userID, category); ok && len(views) > 0 {
		c.JSON(http.StatusOK, views)
		return
	}

	active, err := h.tasks.HasActivePath(userID, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	if !active {
		if _, err := h.orchestrator.GeneratePath(c.Request.Context(), userID, category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate path"})
			return
		}
		h.hub.Broadcast(userID, realtime.Event{Type: realtime.EventPathGenerated, Category: category})
	}

	views, err := h.tasks.ActivePath(userID, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	h.paths.Set(userID, category, views)
	c.JSON(http.StatusOK, views)
}

// GenerateTasks handles POST /api/tasks?category=
// Forces a regeneration regardless of the current path.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	category := categoryParam(c)

	if _, err := h.orchestrator.GeneratePath(c.Request.Context(), userID, category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate path"})
		return
	}
	h.paths.Invalidate(userID, category)
	h.hub.Broadcast(userID, realtime.Event{Type: realtime.EventPathGenerated, Category: category})

	views, err := h.tasks.ActivePath(userID, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdateTaskStatusRequest represents the completion payload
type UpdateTaskStatusRequest struct {
	TaskID uint   `json:"taskId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// UpdateTaskStatus handles POST /api/update_task_status
// Only the "complete" transition exists; repeats are no-ops.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "complete" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported status"})
		return
	}

	res, err := h.tasks.CompleteTask(userID, req.TaskID)
	if errors.Is(err, services.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if res.Transitioned {
		h.paths.Invalidate(userID, res.Task.Category)
		h.hub.Broadcast(userID, realtime.Event{
			Type:     realtime.EventTaskCompleted,
			TaskID:   res.Task.ID,
			Category: res.Task.Category,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"points_awarded": res.PointsAwarded,
	})
}

// AddTaskRequest represents the user-added task payload
type AddTaskRequest struct {
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	DueDate     *string `json:"due_date"`
}

// AddTask handles POST /api/add_task
func (h *TaskHandler) AddTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description and category are required"})
		return
	}

	task, err := h.tasks.AddUserTask(userID, req.Category, req.Description, req.DueDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add task"})
		return
	}

	h.paths.Invalidate(userID, req.Category)
	h.hub.Broadcast(userID, realtime.Event{
		Type:     realtime.EventTaskAdded,
		TaskID:   task.ID,
		Category: req.Category,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    services.TaskView{Task: task, Subtasks: []models.Subtask{}},
	})
}

// AddSubtaskRequest represents the subtask creation payload
type AddSubtaskRequest struct {
	ParentTaskID uint   `json:"parent_task_id" binding:"required"`
	Description  string `json:"description" binding:"required"`
}

// AddSubtask handles POST /api/add_subtask
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent task ID and description are required"})
		return
	}

	subtask, err := h.tasks.CreateSubtask(userID, req.ParentTaskID, req.Description)
	if errors.Is(err, services.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add subtask"})
		return
	}

	h.paths.InvalidateAll(userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "subtask": subtask})
}

// UpdateSubtaskRequest represents the subtask toggle payload
type UpdateSubtaskRequest struct {
	SubtaskID   uint  `json:"subtaskId" binding:"required"`
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

// UpdateSubtask handles POST /api/update_subtask
func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.tasks.SetSubtaskCompleted(userID, req.SubtaskID, *req.IsCompleted)
	if errors.Is(err, services.ErrSubtaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subtask"})
		return
	}

	h.paths.InvalidateAll(userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateDeadlineRequest represents the due date payload
type UpdateDeadlineRequest struct {
	TaskID  uint    `json:"taskId" binding:"required"`
	DueDate *string `json:"dueDate"`
}

// UpdateTaskDeadline handles POST /api/update_task_deadline
// A null dueDate clears the deadline.
func (h *TaskHandler) UpdateTaskDeadline(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req UpdateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.tasks.SetDueDate(userID, req.TaskID, req.DueDate)
	if errors.Is(err, services.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deadline"})
		return
	}

	h.paths.InvalidateAll(userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
