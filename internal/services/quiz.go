package services

import (
	"errors"

	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/planner"

	"gorm.io/gorm"
)

// QuizService creates quizzes during path generation and serves them
// to the client.
type QuizService struct {
	db *gorm.DB
}

// NewQuizService creates a QuizService.
func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// CreateForTask persists a quiz and its questions for a task, in
// question order, on the caller's transaction. The quiz row, its
// questions, and the task's content link must all land or none do.
func (s *QuizService) CreateForTask(tx *gorm.DB, taskID uint, content planner.QuizContent) (models.Quiz, error) {
	quiz := models.Quiz{
		TaskID: taskID,
		Title:  content.Title,
	}
	if quiz.Title == "" {
		quiz.Title = "Quiz"
	}
	if err := tx.Create(&quiz).Error; err != nil {
		return models.Quiz{}, err
	}

	for _, q := range content.Questions {
		question := models.QuizQuestion{
			QuizID:        quiz.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
		}
		if err := tx.Create(&question).Error; err != nil {
			return models.Quiz{}, err
		}
	}

	if err := tx.Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("task_content_id", quiz.ID).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}

// QuizPayload is the quiz as served to the client, questions in
// creation order with options verbatim.
type QuizPayload struct {
	Title     string                `json:"title"`
	Questions []models.QuizQuestion `json:"questions"`
}

// ForTask fetches the quiz behind a task. The task must be owned by
// the user and be quiz-format; anything else reads as not found, so
// task ids cannot be probed across users.
func (s *QuizService) ForTask(userID, taskID uint) (QuizPayload, error) {
	var task models.Task
	err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return QuizPayload{}, ErrQuizNotFound
	}
	if err != nil {
		return QuizPayload{}, err
	}
	if task.Format != models.FormatQuiz || task.ContentID == nil {
		return QuizPayload{}, ErrQuizNotFound
	}

	var quiz models.Quiz
	err = s.db.First(&quiz, *task.ContentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return QuizPayload{}, ErrQuizNotFound
	}
	if err != nil {
		return QuizPayload{}, err
	}

	var questions []models.QuizQuestion
	if err := s.db.Where("quiz_id = ?", quiz.ID).Order("id asc").Find(&questions).Error; err != nil {
		return QuizPayload{}, err
	}

	return QuizPayload{Title: quiz.Title, Questions: questions}, nil
}

// SubmittedAnswer is one answer of a quiz submission.
type SubmittedAnswer struct {
	QuestionID uint `json:"question_id"`
	IsCorrect  bool `json:"is_correct"`
}

// RecordResults appends quiz results for a user. Results are
// append-only; retaking a quiz adds new rows rather than overwriting.
func (s *QuizService) RecordResults(userID uint, answers []SubmittedAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range answers {
			result := models.QuizResult{
				UserID:     userID,
				QuestionID: a.QuestionID,
				IsCorrect:  a.IsCorrect,
			}
			if err := tx.Create(&result).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
