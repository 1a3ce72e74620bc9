package models

import "time"

// Quiz is owned 1:1 by a quiz-format task. Quizzes and their questions
// are written once during path generation and never mutated.
type Quiz struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	TaskID uint   `json:"-" gorm:"column:task_id;uniqueIndex;not null"`
	Title  string `json:"title" gorm:"not null"`
}

// TableName specifies the table name for the Quiz model.
func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is a multiple-choice question. CorrectOption indexes
// into Options, zero-based.
type QuizQuestion struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	QuizID        uint     `json:"-" gorm:"column:quiz_id;index;not null"`
	Text          string   `json:"question_text" gorm:"column:question_text;not null"`
	Options       []string `json:"options" gorm:"serializer:json;not null"`
	CorrectOption int      `json:"correct_option" gorm:"not null"`
	Explanation   string   `json:"explanation"`
}

// TableName specifies the table name for the QuizQuestion model.
func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizResult records one submitted answer. Append-only.
type QuizResult struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"-" gorm:"column:user_id;index;not null"`
	QuestionID  uint      `json:"question_id" gorm:"column:question_id;not null"`
	IsCorrect   bool      `json:"is_correct" gorm:"not null"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the QuizResult model.
func (QuizResult) TableName() string {
	return "quiz_results"
}
