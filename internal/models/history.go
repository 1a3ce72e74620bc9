package models

import "time"

// StatHistory is one recorded stat data point. Append-only.
type StatHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"-" gorm:"column:user_id;index;not null"`
	StatName   string    `json:"stat_name" gorm:"not null"`
	StatValue  string    `json:"stat_value" gorm:"not null"`
	RecordedAt time.Time `json:"recorded_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the StatHistory model.
func (StatHistory) TableName() string {
	return "stat_history"
}

// Activity types written to the log.
const (
	ActivityPathGenerated = "path_generated"
	ActivityTaskCompleted = "task_completed"
	ActivityTaskAdded     = "task_added"
	ActivityStatUpdated   = "stat_updated"
)

// ActivityLog is the append-only audit trail shown on the dashboard.
// Details holds a small JSON object describing the event.
type ActivityLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"-" gorm:"column:user_id;index;not null"`
	ActivityType string    `json:"activity_type" gorm:"not null"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the ActivityLog model.
func (ActivityLog) TableName() string {
	return "activity_log"
}

// ChatConversation stores the assistant transcript for one
// (user, category) pair. History is a JSON array of role/content pairs.
type ChatConversation struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"-" gorm:"column:user_id;uniqueIndex:idx_chat_user_category;not null"`
	Category string `json:"category" gorm:"uniqueIndex:idx_chat_user_category;not null"`
	History  string `json:"history" gorm:"not null"`
}

// TableName specifies the table name for the ChatConversation model.
func (ChatConversation) TableName() string {
	return "chat_conversations"
}
