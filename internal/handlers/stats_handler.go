package handlers

import (
	"errors"
	"net/http"

	"github.com/shreyasboddani/MENTICS/internal/middleware"
	"github.com/shreyasboddani/MENTICS/internal/services"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves stat recording.
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// UpdateStatsRequest represents the stat update payload
type UpdateStatsRequest struct {
	StatName  string `json:"stat_name" binding:"required"`
	StatValue string `json:"stat_value" binding:"required"`
}

// UpdateStats handles POST /api/update_stats
func (h *StatsHandler) UpdateStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing stat name or value"})
		return
	}

	err := h.stats.RecordStat(userID, req.StatName, req.StatValue)
	if errors.Is(err, services.ErrUnknownStat) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown stat name"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stats updated successfully"})
}
