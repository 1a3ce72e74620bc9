package handlers

import (
	"net/http"

	"github.com/shreyasboddani/MENTICS/internal/middleware"
	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the aggregated dashboard payload.
type DashboardHandler struct {
	db           *gorm.DB
	gamification *services.GamificationService
	activity     *services.ActivityService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(db *gorm.DB, gamification *services.GamificationService, activity *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{db: db, gamification: gamification, activity: activity}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	stats, err := h.gamification.Stats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	achievements, err := h.gamification.Achievements(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load achievements"})
		return
	}
	earned := make([]models.Achievement, 0)
	for _, a := range achievements {
		if a.IsEarned {
			earned = append(earned, a)
		}
	}

	var testPrepCompleted, collegeCompleted int64
	if err := h.db.Model(&models.Task{}).
		Where("user_id = ? AND category = ? AND is_completed = ?", userID, models.CategoryTestPrep, true).
		Count(&testPrepCompleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tasks"})
		return
	}
	if err := h.db.Model(&models.Task{}).
		Where("user_id = ? AND category = ? AND is_completed = ?", userID, models.CategoryCollegePlanning, true).
		Count(&collegeCompleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tasks"})
		return
	}

	recent, err := h.activity.Recent(userID, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity"})
		return
	}

	satTotal := services.SATTotal(user.Stats)
	if satTotal == "" {
		satTotal = "—"
	}

	c.JSON(http.StatusOK, gin.H{
		"name":   user.Name,
		"points": stats.Points,
		"streak": stats.CurrentStreak,
		"tasks_completed": gin.H{
			"test_prep":        testPrepCompleted,
			"college_planning": collegeCompleted,
			"total":            testPrepCompleted + collegeCompleted,
		},
		"sat_total":           satTotal,
		"achievements":        achievements,
		"earned_achievements": earned,
		"recent_activity":     recent,
	})
}
