package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/services"

	"github.com/stretchr/testify/require"
)

// seedQuizTask creates a quiz-format task with one question and
// returns the task and question ids.
func seedQuizTask(t *testing.T, env *testEnv, userID uint) (taskID, questionID uint) {
	t.Helper()
	task := models.Task{UserID: userID, Category: models.CategoryTestPrep, GenerationID: "g",
		TaskOrder: 1, Description: "Take the quiz", Format: models.FormatQuiz, IsActive: true}
	require.NoError(t, env.db.Create(&task).Error)

	quiz := models.Quiz{TaskID: task.ID, Title: "Algebra Check"}
	require.NoError(t, env.db.Create(&quiz).Error)
	require.NoError(t, env.db.Model(&task).Update("task_content_id", quiz.ID).Error)

	question := models.QuizQuestion{QuizID: quiz.ID, Text: "2x = 8, x?",
		Options: []string{"2", "4"}, CorrectOption: 1, Explanation: "Divide by 2."}
	require.NoError(t, env.db.Create(&question).Error)
	return task.ID, question.ID
}

func TestGetQuiz_Success(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")
	taskID, _ := seedQuizTask(t, env, 1)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/quiz/%d", taskID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload services.QuizPayload
	decodeJSON(t, w, &payload)
	require.Equal(t, "Algebra Check", payload.Title)
	require.Len(t, payload.Questions, 1)
	require.Equal(t, []string{"2", "4"}, payload.Questions[0].Options)
}

func TestGetQuiz_OtherUsersTask(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "owner@example.com")
	taskID, _ := seedQuizTask(t, env, 1)
	intruderToken := env.seedUser(t, 2, "intruder@example.com")

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/quiz/%d", taskID), intruderToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuiz_LinkTaskIsNotAQuiz(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	task := models.Task{UserID: 1, Category: models.CategoryTestPrep, GenerationID: "g",
		TaskOrder: 1, Description: "read", Format: models.FormatLink, IsActive: true}
	require.NoError(t, env.db.Create(&task).Error)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/quiz/%d", task.ID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitQuizResults_Appends(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")
	_, questionID := seedQuizTask(t, env, 1)

	w := env.do(t, http.MethodPost, "/api/submit_quiz_results", token, map[string]any{
		"results": []map[string]any{
			{"question_id": questionID, "is_correct": false},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.QuizResult{}).
		Where("user_id = ? AND question_id = ?", 1, questionID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSubmitQuizResults_RejectsEmpty(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedUser(t, 1, "a@example.com")

	w := env.do(t, http.MethodPost, "/api/submit_quiz_results", token, map[string]any{
		"results": []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
