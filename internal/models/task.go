package models

import "time"

// Category values are free text in storage, but the app only ever
// generates paths for these two.
const (
	CategoryTestPrep        = "Test Prep"
	CategoryCollegePlanning = "College Planning"
)

// TaskType represents the type of a task
type TaskType string

const (
	TypeStandard  TaskType = "standard"
	TypeMilestone TaskType = "milestone"
)

// TaskFormat distinguishes link tasks from interactive quiz tasks
type TaskFormat string

const (
	FormatLink TaskFormat = "link"
	FormatQuiz TaskFormat = "quiz"
)

// Task represents one step of a learning path. Tasks created together
// share a GenerationID; a generation is never edited in place, only
// deactivated when a new one replaces it.
type Task struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"-" gorm:"column:user_id;index;not null"`
	Category     string     `json:"category" gorm:"not null"`
	GenerationID string     `json:"-" gorm:"column:generation_id;index;not null"`
	TaskOrder    int        `json:"task_order" gorm:"not null"`
	Description  string     `json:"description" gorm:"not null"`
	Reason       string     `json:"reason"`
	Type         TaskType   `json:"type" gorm:"default:'standard'"`
	StatToUpdate *string    `json:"stat_to_update" gorm:"column:stat_to_update"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	IsActive     bool       `json:"is_active"`
	DueDate      *string    `json:"due_date" gorm:"column:due_date"`
	IsUserAdded  bool       `json:"is_user_added" gorm:"default:false"`
	Format       TaskFormat `json:"task_format" gorm:"column:task_format;default:'link'"`
	ContentID    *uint      `json:"task_content_id" gorm:"column:task_content_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name for the Task model.
func (Task) TableName() string {
	return "paths"
}

// Subtask is a user-managed checklist item under a task. Subtasks are
// independently toggleable and never feed gamification.
type Subtask struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ParentTaskID uint   `json:"-" gorm:"column:parent_task_id;index;not null"`
	Description  string `json:"description" gorm:"not null"`
	IsCompleted  bool   `json:"is_completed" gorm:"default:false"`
}

// TableName specifies the table name for the Subtask model.
func (Subtask) TableName() string {
	return "subtasks"
}
