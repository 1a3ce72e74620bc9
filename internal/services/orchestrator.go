package services

import (
	"context"

	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/planner"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Orchestrator drives path generation end to end: aggregate context,
// call the planner, fall back when it misbehaves, and persist the new
// generation atomically.
type Orchestrator struct {
	db          *gorm.DB
	planner     planner.Planner
	history     *HistoryService
	generations *GenerationService
	quizzes     *QuizService
	activity    *ActivityService
	maxTasks    int
}

// NewOrchestrator creates an Orchestrator. maxTasks caps every
// generation; values below 1 fall back to 5.
func NewOrchestrator(db *gorm.DB, p planner.Planner, history *HistoryService, generations *GenerationService, quizzes *QuizService, activity *ActivityService, maxTasks int) *Orchestrator {
	if maxTasks < 1 {
		maxTasks = 5
	}
	return &Orchestrator{
		db:          db,
		planner:     p,
		history:     history,
		generations: generations,
		quizzes:     quizzes,
		activity:    activity,
		maxTasks:    maxTasks,
	}
}

// GeneratePath replaces the user's active path in a category with a
// freshly generated one and returns the new tasks in path order.
//
// Generation is serialized per (user, category). Any planner failure,
// including a validation reject or an empty list, degrades to the
// deterministic fallback set; a generation never completes with zero
// tasks. Deactivating the old generation and inserting the new one
// commit in a single transaction, so a crash mid-generation leaves the
// previous path intact.
func (o *Orchestrator) GeneratePath(ctx context.Context, userID uint, category string) ([]models.Task, error) {
	bundle, err := o.history.Build(userID, category)
	if err != nil {
		return nil, err
	}

	unlock := o.generations.Lock(userID, category)
	defer unlock()

	proposed, err := o.planner.ProposeTasks(ctx, planner.ProposeRequest{
		Bundle:   bundle,
		MaxTasks: o.maxTasks,
	})
	if err != nil || len(proposed) == 0 {
		proposed = planner.Fallback(category)
	}
	if len(proposed) > o.maxTasks {
		proposed = proposed[:o.maxTasks]
	}

	generationID := uuid.NewString()

	var created []models.Task
	err = o.db.Transaction(func(tx *gorm.DB) error {
		if err := o.generations.Deactivate(tx, userID, category); err != nil {
			return err
		}

		for i, p := range proposed {
			format := models.TaskFormat(p.Format)
			if format != models.FormatQuiz || p.QuizContent == nil {
				format = models.FormatLink
			}
			taskType := models.TaskType(p.Type)
			if taskType != models.TypeMilestone {
				taskType = models.TypeStandard
			}

			task := models.Task{
				UserID:       userID,
				Category:     category,
				GenerationID: generationID,
				TaskOrder:    i + 1,
				Description:  p.Description,
				Reason:       p.Reason,
				Type:         taskType,
				StatToUpdate: p.StatToUpdate,
				IsActive:     true,
				Format:       format,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}

			if format == models.FormatQuiz && p.QuizContent != nil {
				quiz, err := o.quizzes.CreateForTask(tx, task.ID, *p.QuizContent)
				if err != nil {
					return err
				}
				task.ContentID = &quiz.ID
			}

			created = append(created, task)
		}

		return o.activity.Log(tx, userID, models.ActivityPathGenerated, map[string]any{
			"category": category,
		})
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
