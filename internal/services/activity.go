package services

import (
	"encoding/json"

	"github.com/shreyasboddani/MENTICS/internal/models"

	"gorm.io/gorm"
)

// ActivityService writes and reads the append-only activity log.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates an ActivityService.
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Log appends one activity entry. It runs on the given handle so
// callers inside a transaction stay atomic with the rest of their
// writes; pass s.db for standalone logging.
func (s *ActivityService) Log(tx *gorm.DB, userID uint, activityType string, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	entry := models.ActivityLog{
		UserID:       userID,
		ActivityType: activityType,
		Details:      string(payload),
	}
	return tx.Create(&entry).Error
}

// Recent returns the newest activity entries for a user, newest first.
func (s *ActivityService) Recent(userID uint, limit int) ([]models.ActivityLog, error) {
	if limit < 1 {
		limit = 10
	}
	var entries []models.ActivityLog
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
