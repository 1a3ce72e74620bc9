package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shreyasboddani/MENTICS/internal/middleware"
	"github.com/shreyasboddani/MENTICS/internal/services"

	"github.com/gin-gonic/gin"
)

// QuizHandler serves quiz content and result submission.
type QuizHandler struct {
	quizzes *services.QuizService
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(quizzes *services.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// GetQuiz handles GET /api/quiz/:taskId
// The task must belong to the caller and be quiz-format.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	payload, err := h.quizzes.ForTask(userID, uint(taskID))
	if errors.Is(err, services.ErrQuizNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found or task is not a quiz"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quiz"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// SubmitResultsRequest represents the quiz submission payload
type SubmitResultsRequest struct {
	Results []services.SubmittedAnswer `json:"results" binding:"required"`
}

// SubmitResults handles POST /api/submit_quiz_results
func (h *QuizHandler) SubmitResults(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req SubmitResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Results) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid results format"})
		return
	}

	if err := h.quizzes.RecordResults(userID, req.Results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to record results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
