package routes

import (
	"github.com/shreyasboddani/MENTICS/internal/handlers"
	"github.com/shreyasboddani/MENTICS/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Tasks     *handlers.TaskHandler
	Quiz      *handlers.QuizHandler
	Stats     *handlers.StatsHandler
	Dashboard *handlers.DashboardHandler
	Chat      *handlers.ChatHandler
	WS        *handlers.WSHandler
}

// Setup wires all routes onto a new engine.
func Setup(h Handlers) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Mentics API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/signup", h.Auth.Signup)
		api.POST("/login", h.Auth.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		protectedRoutes.POST("/timezone", h.Auth.SetTimezone)

		// Path and task endpoints
		protectedRoutes.GET("/tasks", h.Tasks.GetTasks)
		protectedRoutes.POST("/tasks", h.Tasks.GenerateTasks)
		protectedRoutes.POST("/update_task_status", h.Tasks.UpdateTaskStatus)
		protectedRoutes.POST("/add_task", h.Tasks.AddTask)
		protectedRoutes.POST("/add_subtask", h.Tasks.AddSubtask)
		protectedRoutes.POST("/update_subtask", h.Tasks.UpdateSubtask)
		protectedRoutes.POST("/update_task_deadline", h.Tasks.UpdateTaskDeadline)

		// Quiz endpoints
		protectedRoutes.GET("/quiz/:taskId", h.Quiz.GetQuiz)
		protectedRoutes.POST("/submit_quiz_results", h.Quiz.SubmitResults)

		// Stats and dashboard
		protectedRoutes.POST("/update_stats", h.Stats.UpdateStats)
		protectedRoutes.GET("/dashboard", h.Dashboard.GetDashboard)

		// Assistant conversation
		protectedRoutes.POST("/chat", h.Chat.Chat)
		protectedRoutes.GET("/chat_history", h.Chat.GetChatHistory)
		protectedRoutes.POST("/reset_chat", h.Chat.ResetChat)

		// Realtime events
		protectedRoutes.GET("/ws", h.WS.Handle)
	}

	return ginRouter
}
