package services

import (
	"context"
	"testing"

	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/planner"
	"github.com/shreyasboddani/MENTICS/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrchestrator(t *testing.T, p planner.Planner) (*Orchestrator, *gorm.DB) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{ID: 1, Email: "a@b.c", Password: "x"}).Error)
	o := NewOrchestrator(db, p,
		NewHistoryService(db),
		NewGenerationService(db),
		NewQuizService(db),
		NewActivityService(db),
		5)
	return o, db
}

func TestGeneratePath_PlannerUnavailableFallsBack(t *testing.T) {
	o, db := newOrchestrator(t, planner.Offline{})

	tasks, err := o.GeneratePath(context.Background(), 1, models.CategoryTestPrep)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)
	require.LessOrEqual(t, len(tasks), 5)

	for i, task := range tasks {
		require.Equal(t, models.CategoryTestPrep, task.Category)
		require.Equal(t, i+1, task.TaskOrder)
		require.True(t, task.IsActive)
		require.Equal(t, tasks[0].GenerationID, task.GenerationID)
	}

	var logged int64
	require.NoError(t, db.Model(&models.ActivityLog{}).
		Where("user_id = ? AND activity_type = ?", 1, models.ActivityPathGenerated).
		Count(&logged).Error)
	require.Equal(t, int64(1), logged)
}

func TestGeneratePath_FallbackCreatesLinkedQuiz(t *testing.T) {
	o, db := newOrchestrator(t, planner.Offline{})

	tasks, err := o.GeneratePath(context.Background(), 1, models.CategoryTestPrep)
	require.NoError(t, err)

	var quizTask *models.Task
	for i := range tasks {
		if tasks[i].Format == models.FormatQuiz {
			quizTask = &tasks[i]
			break
		}
	}
	require.NotNil(t, quizTask, "fallback path should include a quiz task")
	require.NotNil(t, quizTask.ContentID)

	var quiz models.Quiz
	require.NoError(t, db.First(&quiz, *quizTask.ContentID).Error)
	require.Equal(t, quizTask.ID, quiz.TaskID)

	var questions []models.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Find(&questions).Error)
	require.NotEmpty(t, questions)
}

func TestGeneratePath_RegenerationLeavesOneActiveGeneration(t *testing.T) {
	o, db := newOrchestrator(t, planner.Offline{})

	first, err := o.GeneratePath(context.Background(), 1, models.CategoryTestPrep)
	require.NoError(t, err)
	second, err := o.GeneratePath(context.Background(), 1, models.CategoryTestPrep)
	require.NoError(t, err)
	require.NotEqual(t, first[0].GenerationID, second[0].GenerationID)

	var active []models.Task
	require.NoError(t, db.Where("user_id = ? AND category = ? AND is_active = ?",
		1, models.CategoryTestPrep, true).Find(&active).Error)
	require.Len(t, active, len(second))
	for _, task := range active {
		require.Equal(t, second[0].GenerationID, task.GenerationID)
	}
}

func TestGeneratePath_UsesPlannerProposal(t *testing.T) {
	stat := "gpa"
	mock := planner.NewMock(planner.MockProposal{Tasks: []planner.ProposedTask{
		{Format: "link", Description: "Tour two campuses", Reason: "r", Type: "standard",
			Category: models.CategoryCollegePlanning, Difficulty: "easy"},
		{Format: "link", Description: "Update your GPA", Reason: "r", Type: "milestone",
			StatToUpdate: &stat, Category: models.CategoryCollegePlanning, Difficulty: "easy"},
	}})
	o, _ := newOrchestrator(t, mock)

	tasks, err := o.GeneratePath(context.Background(), 1, models.CategoryCollegePlanning)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "Tour two campuses", tasks[0].Description)
	require.Equal(t, models.TypeMilestone, tasks[1].Type)
	require.NotNil(t, tasks[1].StatToUpdate)
	require.Equal(t, "gpa", *tasks[1].StatToUpdate)

	require.Equal(t, 1, mock.ProposeCount())
	require.Equal(t, models.CategoryCollegePlanning, mock.ProposeCalls[0].Bundle.Category)
	require.Equal(t, 5, mock.ProposeCalls[0].MaxTasks)
}

func TestGeneratePath_CapsOversizedProposal(t *testing.T) {
	var oversized []planner.ProposedTask
	for i := 0; i < 8; i++ {
		oversized = append(oversized, planner.ProposedTask{
			Format: "link", Description: "task", Reason: "r", Type: "standard",
			Category: models.CategoryTestPrep, Difficulty: "easy",
		})
	}
	mock := planner.NewMock(planner.MockProposal{Tasks: oversized})
	o, _ := newOrchestrator(t, mock)

	tasks, err := o.GeneratePath(context.Background(), 1, models.CategoryTestPrep)
	require.NoError(t, err)
	require.Len(t, tasks, 5)
}

func TestGeneratePath_EmptyProposalFallsBack(t *testing.T) {
	mock := planner.NewMock(planner.MockProposal{Tasks: nil})
	o, _ := newOrchestrator(t, mock)

	tasks, err := o.GeneratePath(context.Background(), 1, models.CategoryCollegePlanning)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)
	require.Equal(t, models.CategoryCollegePlanning, tasks[0].Category)
}
