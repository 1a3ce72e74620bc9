package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shreyasboddani/MENTICS/internal/models"

	"gorm.io/gorm"
)

// GenerationService manages the one-active-generation invariant for
// each (user, category) pair. Generation is serialized per pair with
// an in-process keyed mutex; SQLite serves a single process, so no
// cross-process coordination is needed.
type GenerationService struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(db *gorm.DB) *GenerationService {
	return &GenerationService{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock serializes path generation for one (user, category) pair and
// returns the unlock function. Locks are never removed from the map;
// the key space is bounded by users times two categories.
func (s *GenerationService) Lock(userID uint, category string) func() {
	key := fmt.Sprintf("%d|%s", userID, category)

	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Deactivate retires every active task of a (user, category) pair.
// Runs on the caller's transaction so retirement and the insert of the
// replacement generation commit together.
func (s *GenerationService) Deactivate(tx *gorm.DB, userID uint, category string) error {
	return tx.Model(&models.Task{}).
		Where("user_id = ? AND category = ? AND is_active = ?", userID, category, true).
		Update("is_active", false).Error
}

// ActiveTasks returns the user's active tasks for a category in path
// order.
func (s *GenerationService) ActiveTasks(userID uint, category string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("user_id = ? AND category = ? AND is_active = ?", userID, category, true).
		Order("task_order asc").
		Find(&tasks).Error
	return tasks, err
}

// HasActive reports whether the user has any active task in a
// category.
func (s *GenerationService) HasActive(userID uint, category string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Task{}).
		Where("user_id = ? AND category = ? AND is_active = ?", userID, category, true).
		Count(&count).Error
	return count > 0, err
}

// ActiveGenerationID returns the generation id shared by the user's
// active tasks in a category, or "" when there is none. Runs on the
// caller's handle so a transactional caller reads the same snapshot it
// writes.
func (s *GenerationService) ActiveGenerationID(tx *gorm.DB, userID uint, category string) (string, error) {
	var task models.Task
	err := tx.Where("user_id = ? AND category = ? AND is_active = ?", userID, category, true).
		Order("task_order asc").
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return task.GenerationID, nil
}
