package models

// GamificationStats is the singleton gamification row per user, created
// at signup. Points only ever increase; streak and last-completed date
// move together on completion events.
type GamificationStats struct {
	UserID            uint    `json:"-" gorm:"column:user_id;primaryKey"`
	Points            int     `json:"points" gorm:"default:0"`
	CurrentStreak     int     `json:"current_streak" gorm:"default:0"`
	LastCompletedDate *string `json:"last_completed_date" gorm:"column:last_completed_date"`
}

// TableName specifies the table name for the GamificationStats model.
func (GamificationStats) TableName() string {
	return "gamification_stats"
}

// Achievement is a derived badge. The earned set is recomputed from
// cumulative counters on every read and is never persisted.
type Achievement struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsEarned    bool   `json:"is_earned"`
}
