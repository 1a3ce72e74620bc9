package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shreyasboddani/MENTICS/internal/models"

	"gorm.io/gorm"
)

// nowFn is a small indirection to allow test stubbing.
var nowFn = time.Now

// PointsFor returns the point award for completing a task. A boss
// battle is any task whose description starts with "Boss Battle:",
// matched case-insensitively; milestones and standard tasks use fixed
// awards.
func PointsFor(task models.Task) int {
	if strings.HasPrefix(strings.ToLower(task.Description), "boss battle:") {
		return 100
	}
	if task.Type == models.TypeMilestone {
		return 25
	}
	return 10
}

// GamificationService maintains the per-user points and streak row and
// derives achievements from cumulative progress.
type GamificationService struct {
	db *gorm.DB
}

// NewGamificationService creates a GamificationService.
func NewGamificationService(db *gorm.DB) *GamificationService {
	return &GamificationService{db: db}
}

// EnsureStats creates the gamification row for a user if it does not
// exist yet. Called at signup.
func (s *GamificationService) EnsureStats(tx *gorm.DB, userID uint) error {
	row := models.GamificationStats{UserID: userID}
	return tx.Where(models.GamificationStats{UserID: userID}).FirstOrCreate(&row).Error
}

// Stats returns the user's gamification row, creating it on first read.
func (s *GamificationService) Stats(userID uint) (models.GamificationStats, error) {
	var row models.GamificationStats
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.GamificationStats{UserID: userID}
		err = s.db.Create(&row).Error
	}
	return row, err
}

// localDate returns today's date in the user's timezone, formatted as
// an ISO date. An empty or unknown timezone falls back to UTC.
func localDate(timezone string) string {
	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}
	return nowFn().In(loc).Format("2006-01-02")
}

// ApplyCompletion awards points and advances the streak for one task
// completion. It must run on the same transaction that flips the task
// so the read-modify-write is atomic. Rules: another completion on the
// same local day keeps the streak, a completion the day after the last
// one extends it, anything else resets it to 1. The last-completed
// date always moves to today.
func (s *GamificationService) ApplyCompletion(tx *gorm.DB, userID uint, task models.Task, timezone string) (int, error) {
	var row models.GamificationStats
	err := tx.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.GamificationStats{UserID: userID}
		if err := tx.Create(&row).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	today := localDate(timezone)
	yesterday := ""
	if t, err := time.Parse("2006-01-02", today); err == nil {
		yesterday = t.AddDate(0, 0, -1).Format("2006-01-02")
	}

	switch {
	case row.LastCompletedDate != nil && *row.LastCompletedDate == today:
		// same day, streak unchanged
	case row.LastCompletedDate != nil && *row.LastCompletedDate == yesterday:
		row.CurrentStreak++
	default:
		row.CurrentStreak = 1
	}

	points := PointsFor(task)
	row.Points += points
	row.LastCompletedDate = &today

	if err := tx.Save(&row).Error; err != nil {
		return 0, err
	}
	return points, nil
}

// AchievementInputs are the cumulative counters achievements derive
// from.
type AchievementInputs struct {
	CompletedTasks     int
	Points             int
	Streak             int
	HasTestPrepPath    bool
	HasCollegePlanPath bool
}

// ComputeAchievements derives the full badge list from cumulative
// counters. The earned set is recomputed on every read and never
// stored, so badge definitions can change without migrations.
func ComputeAchievements(in AchievementInputs) []models.Achievement {
	return []models.Achievement{
		{ID: "pioneer_test", Icon: "🚀", Title: "Test Prep Pioneer",
			Description: "Generated your first Test Prep path.", IsEarned: in.HasTestPrepPath},
		{ID: "planner_college", Icon: "🏛️", Title: "College Planner",
			Description: "Generated your first College Planning path.", IsEarned: in.HasCollegePlanPath},
		{ID: "first_step", Icon: "✅", Title: "First Step",
			Description: "Completed your first task.", IsEarned: in.CompletedTasks >= 1},
		{ID: "task_master_10", Icon: "🔥", Title: "Task Master",
			Description: "Completed 10 tasks.", IsEarned: in.CompletedTasks >= 10},
		{ID: "pathfinder_pro_25", Icon: "🏆", Title: "Pathfinder Pro",
			Description: "Completed 25 tasks.", IsEarned: in.CompletedTasks >= 25},
		{ID: "streak_3", Icon: "⚡", Title: "On a Roll",
			Description: "Maintained a 3-day streak.", IsEarned: in.Streak >= 3},
		{ID: "streak_7", Icon: "🌟", Title: "Committed",
			Description: "Maintained a 7-day streak.", IsEarned: in.Streak >= 7},
		{ID: "points_100", Icon: "💯", Title: "Point Collector",
			Description: "Earned 100 points.", IsEarned: in.Points >= 100},
		{ID: "points_500", Icon: "💎", Title: "Point Pro",
			Description: "Earned 500 points.", IsEarned: in.Points >= 500},
	}
}

// Achievements gathers the counters for a user and derives the badge
// list.
func (s *GamificationService) Achievements(userID uint) ([]models.Achievement, error) {
	row, err := s.Stats(userID)
	if err != nil {
		return nil, err
	}

	var completed int64
	if err := s.db.Model(&models.Task{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	var testPrep, college int64
	if err := s.db.Model(&models.Task{}).
		Where("user_id = ? AND category = ?", userID, models.CategoryTestPrep).
		Count(&testPrep).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Task{}).
		Where("user_id = ? AND category = ?", userID, models.CategoryCollegePlanning).
		Count(&college).Error; err != nil {
		return nil, err
	}

	return ComputeAchievements(AchievementInputs{
		CompletedTasks:     int(completed),
		Points:             row.Points,
		Streak:             row.CurrentStreak,
		HasTestPrepPath:    testPrep > 0,
		HasCollegePlanPath: college > 0,
	}), nil
}
