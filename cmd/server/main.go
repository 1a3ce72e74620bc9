package main

import (
	"context"
	"log"

	"github.com/shreyasboddani/MENTICS/internal/config"
	"github.com/shreyasboddani/MENTICS/internal/database"
	"github.com/shreyasboddani/MENTICS/internal/handlers"
	"github.com/shreyasboddani/MENTICS/internal/planner"
	"github.com/shreyasboddani/MENTICS/internal/realtime"
	"github.com/shreyasboddani/MENTICS/internal/routes"
	"github.com/shreyasboddani/MENTICS/internal/services"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Server.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	// Without an API key, generation falls back to the built-in paths
	// and the assistant answers with a fixed notice.
	var p planner.Planner = planner.Offline{}
	if cfg.Planner.APIKey != "" {
		gemini, err := planner.NewGemini(context.Background(), planner.GeminiConfig{
			APIKey:  cfg.Planner.APIKey,
			Model:   cfg.Planner.Model,
			Timeout: cfg.Planner.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to create planner: ", err)
		}
		p = gemini
	} else {
		log.Println("GEMINI_API_KEY not set; using offline planner")
	}

	hub := realtime.NewHub()

	activity := services.NewActivityService(db)
	gamification := services.NewGamificationService(db)
	generations := services.NewGenerationService(db)
	quizzes := services.NewQuizService(db)
	history := services.NewHistoryService(db)
	stats := services.NewStatsService(db, activity)
	tasks := services.NewTaskService(db, generations, gamification, activity)
	orchestrator := services.NewOrchestrator(db, p, history, generations, quizzes, activity, cfg.Planner.MaxTasks)

	paths := handlers.NewPathCache()
	router := routes.Setup(routes.Handlers{
		Auth:      handlers.NewAuthHandler(db, gamification),
		Tasks:     handlers.NewTaskHandler(tasks, orchestrator, paths, hub),
		Quiz:      handlers.NewQuizHandler(quizzes),
		Stats:     handlers.NewStatsHandler(stats),
		Dashboard: handlers.NewDashboardHandler(db, gamification, activity),
		Chat:      handlers.NewChatHandler(p, history, orchestrator, tasks, paths, hub),
		WS:        handlers.NewWSHandler(hub),
	})

	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
