package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/services"

	"github.com/stretchr/testify/require"
)

func TestGetTasks_GeneratesPathOnFirstVisit(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	// empty planner queue means the fallback path is used
	w := env.do(t, http.MethodGet, "/api/tasks?category=Test%20Prep", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []services.TaskView
	decodeJSON(t, w, &views)
	require.NotEmpty(t, views)
	require.LessOrEqual(t, len(views), 5)
	for _, v := range views {
		require.Equal(t, models.CategoryTestPrep, v.Category)
		require.NotNil(t, v.Subtasks)
	}
}

func TestGetTasks_ReturnsExistingPathWithoutRegenerating(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	first := env.do(t, http.MethodGet, "/api/tasks?category=Test%20Prep", token, nil)
	require.Equal(t, http.StatusOK, first.Code)
	generated := env.planner.ProposeCount()

	second := env.do(t, http.MethodGet, "/api/tasks?category=Test%20Prep", token, nil)
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, generated, env.planner.ProposeCount())
}

func TestPostTasks_ForcesRegeneration(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	first := env.do(t, http.MethodGet, "/api/tasks?category=Test%20Prep", token, nil)
	require.Equal(t, http.StatusOK, first.Code)

	w := env.do(t, http.MethodPost, "/api/tasks?category=Test%20Prep", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var active []models.Task
	require.NoError(t, env.db.Where("user_id = ? AND is_active = ?", 1, true).Find(&active).Error)
	var retired []models.Task
	require.NoError(t, env.db.Where("user_id = ? AND is_active = ?", 1, false).Find(&retired).Error)
	require.NotEmpty(t, active)
	require.NotEmpty(t, retired)
}

func TestUpdateTaskStatus_CompleteAwardsPoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	task := models.Task{UserID: 1, Category: models.CategoryTestPrep, GenerationID: "g",
		TaskOrder: 1, Description: "Review algebra", Type: models.TypeStandard, IsActive: true}
	require.NoError(t, env.db.Create(&task).Error)

	w := env.do(t, http.MethodPost, "/api/update_task_status", token, map[string]any{
		"taskId": task.ID,
		"status": "complete",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success       bool `json:"success"`
		PointsAwarded int  `json:"points_awarded"`
	}
	decodeJSON(t, w, &resp)
	require.True(t, resp.Success)
	require.Equal(t, 10, resp.PointsAwarded)

	// second completion is a no-op
	w = env.do(t, http.MethodPost, "/api/update_task_status", token, map[string]any{
		"taskId": task.ID,
		"status": "complete",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	require.Zero(t, resp.PointsAwarded)

	var stats models.GamificationStats
	require.NoError(t, env.db.Where("user_id = ?", 1).First(&stats).Error)
	require.Equal(t, 10, stats.Points)
}

func TestUpdateTaskStatus_UnknownTask(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	w := env.do(t, http.MethodPost, "/api/update_task_status", token, map[string]any{
		"taskId": 12345,
		"status": "complete",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddTask_AppendsToPath(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	w := env.do(t, http.MethodPost, "/api/add_task", token, map[string]any{
		"description": "My custom task",
		"category":    models.CategoryCollegePlanning,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var task models.Task
	require.NoError(t, env.db.Where("user_id = ? AND description = ?", 1, "My custom task").First(&task).Error)
	require.True(t, task.IsUserAdded)
	require.True(t, task.IsActive)
}

func TestSubtaskLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	task := models.Task{UserID: 1, Category: models.CategoryTestPrep, GenerationID: "g",
		TaskOrder: 1, Description: "parent", IsActive: true}
	require.NoError(t, env.db.Create(&task).Error)

	w := env.do(t, http.MethodPost, "/api/add_subtask", token, map[string]any{
		"parent_task_id": task.ID,
		"description":    "step one",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subtask models.Subtask `json:"subtask"`
	}
	decodeJSON(t, w, &resp)
	require.NotZero(t, resp.Subtask.ID)

	w = env.do(t, http.MethodPost, "/api/update_subtask", token, map[string]any{
		"subtaskId":    resp.Subtask.ID,
		"is_completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var sub models.Subtask
	require.NoError(t, env.db.First(&sub, resp.Subtask.ID).Error)
	require.True(t, sub.IsCompleted)

	// subtasks never touch gamification
	var stats models.GamificationStats
	require.NoError(t, env.db.Where("user_id = ?", 1).First(&stats).Error)
	require.Zero(t, stats.Points)
}

func TestUpdateTaskDeadline_SetAndClear(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	task := models.Task{UserID: 1, Category: models.CategoryTestPrep, GenerationID: "g",
		TaskOrder: 1, Description: "d", IsActive: true}
	require.NoError(t, env.db.Create(&task).Error)

	w := env.do(t, http.MethodPost, "/api/update_task_deadline", token, map[string]any{
		"taskId":  task.ID,
		"dueDate": "2026-06-01",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Task
	require.NoError(t, env.db.First(&got, task.ID).Error)
	require.NotNil(t, got.DueDate)
	require.Equal(t, "2026-06-01", *got.DueDate)

	w = env.do(t, http.MethodPost, "/api/update_task_deadline", token, map[string]any{
		"taskId":  task.ID,
		"dueDate": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, env.db.First(&got, task.ID).Error)
	require.Nil(t, got.DueDate)
}

func TestGetTasks_CategoriesAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	w := env.do(t, http.MethodGet, "/api/tasks?category=Test%20Prep", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/tasks?category=%s", "College%20Planning"), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []services.TaskView
	decodeJSON(t, w, &views)
	require.NotEmpty(t, views)
	for _, v := range views {
		require.Equal(t, models.CategoryCollegePlanning, v.Category)
	}
}
