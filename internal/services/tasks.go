package services

import (
	"errors"

	"github.com/shreyasboddani/MENTICS/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskView is a task with its subtasks attached, as served to clients.
type TaskView struct {
	models.Task
	Subtasks []models.Subtask `json:"subtasks"`
}

// TaskService covers task listing, completion, user-added tasks, and
// subtask management.
type TaskService struct {
	db           *gorm.DB
	generations  *GenerationService
	gamification *GamificationService
	activity     *ActivityService
}

// NewTaskService creates a TaskService.
func NewTaskService(db *gorm.DB, generations *GenerationService, gamification *GamificationService, activity *ActivityService) *TaskService {
	return &TaskService{
		db:           db,
		generations:  generations,
		gamification: gamification,
		activity:     activity,
	}
}

// ActivePath returns the user's active tasks for a category in path
// order, each with its subtasks.
func (s *TaskService) ActivePath(userID uint, category string) ([]TaskView, error) {
	tasks, err := s.generations.ActiveTasks(userID, category)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		var subtasks []models.Subtask
		if err := s.db.Where("parent_task_id = ?", t.ID).Order("id asc").Find(&subtasks).Error; err != nil {
			return nil, err
		}
		if subtasks == nil {
			subtasks = []models.Subtask{}
		}
		views = append(views, TaskView{Task: t, Subtasks: subtasks})
	}
	return views, nil
}

// HasActivePath reports whether the user has an active path in a
// category without materializing it.
func (s *TaskService) HasActivePath(userID uint, category string) (bool, error) {
	return s.generations.HasActive(userID, category)
}

// CompletionResult describes the outcome of a CompleteTask call.
type CompletionResult struct {
	Transitioned  bool
	PointsAwarded int
	Task          models.Task
}

// CompleteTask marks a task complete and applies the gamification
// side effects in a single transaction. A task that is already
// complete is left untouched and awards nothing, so retries and double
// clicks stay idempotent.
func (s *TaskService) CompleteTask(userID, taskID uint) (CompletionResult, error) {
	var res CompletionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		res.Task = task

		if task.IsCompleted {
			return nil
		}

		if err := tx.Model(&task).Update("is_completed", true).Error; err != nil {
			return err
		}
		task.IsCompleted = true

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		points, err := s.gamification.ApplyCompletion(tx, userID, task, user.Timezone)
		if err != nil {
			return err
		}

		if err := s.activity.Log(tx, userID, models.ActivityTaskCompleted, map[string]any{
			"description": task.Description,
			"category":    task.Category,
		}); err != nil {
			return err
		}

		res.Transitioned = true
		res.PointsAwarded = points
		res.Task = task
		return nil
	})
	return res, err
}

// AddUserTask appends a user-authored task to the end of the active
// path. When no generation is active yet, the task opens a fresh one.
func (s *TaskService) AddUserTask(userID uint, category, description string, dueDate *string) (models.Task, error) {
	var task models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		genID, err := s.generations.ActiveGenerationID(tx, userID, category)
		if err != nil {
			return err
		}
		if genID == "" {
			genID = uuid.NewString()
		}

		row := struct{ MaxOrder int }{}
		if err := tx.Model(&models.Task{}).
			Select("COALESCE(MAX(task_order), 0) as max_order").
			Where("user_id = ? AND category = ? AND is_active = ?", userID, category, true).
			Scan(&row).Error; err != nil {
			return err
		}

		task = models.Task{
			UserID:       userID,
			Category:     category,
			GenerationID: genID,
			TaskOrder:    row.MaxOrder + 1,
			Description:  description,
			Type:         models.TypeStandard,
			IsActive:     true,
			DueDate:      dueDate,
			IsUserAdded:  true,
			Format:       models.FormatLink,
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		return s.activity.Log(tx, userID, models.ActivityTaskAdded, map[string]any{
			"description": description,
			"category":    category,
		})
	})
	return task, err
}

// SetDueDate updates or clears the due date on a task owned by the
// user.
func (s *TaskService) SetDueDate(userID, taskID uint, dueDate *string) error {
	result := s.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Update("due_date", dueDate)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CreateSubtask appends a subtask to a task owned by the user.
func (s *TaskService) CreateSubtask(userID, parentTaskID uint, description string) (models.Subtask, error) {
	var subtask models.Subtask
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var parent models.Task
		if err := tx.Where("id = ? AND user_id = ?", parentTaskID, userID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		subtask = models.Subtask{
			ParentTaskID: parentTaskID,
			Description:  description,
		}
		return tx.Create(&subtask).Error
	})
	return subtask, err
}

// SetSubtaskCompleted toggles completion on a subtask whose parent is
// owned by the user. Subtasks never feed gamification.
func (s *TaskService) SetSubtaskCompleted(userID, subtaskID uint, completed bool) error {
	var subtask models.Subtask
	if err := s.db.First(&subtask, subtaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubtaskNotFound
		}
		return err
	}

	var parent models.Task
	if err := s.db.Where("id = ? AND user_id = ?", subtask.ParentTaskID, userID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubtaskNotFound
		}
		return err
	}

	return s.db.Model(&subtask).Update("is_completed", completed).Error
}
