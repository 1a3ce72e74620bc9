package handlers

import (
	"net/http"
	"strings"

	"github.com/shreyasboddani/MENTICS/internal/middleware"
	"github.com/shreyasboddani/MENTICS/internal/planner"
	"github.com/shreyasboddani/MENTICS/internal/realtime"
	"github.com/shreyasboddani/MENTICS/internal/services"

	"github.com/gin-gonic/gin"
)

// regenerationKeywords in the latest user message divert a chat turn
// into a full path regeneration.
var regenerationKeywords = []string{"regenerate", "new path", "change"}

// ChatHandler serves the assistant conversation endpoints.
type ChatHandler struct {
	planner      planner.Planner
	history      *services.HistoryService
	orchestrator *services.Orchestrator
	tasks        *services.TaskService
	paths        *PathCache
	hub          *realtime.Hub
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(p planner.Planner, history *services.HistoryService, orchestrator *services.Orchestrator, tasks *services.TaskService, paths *PathCache, hub *realtime.Hub) *ChatHandler {
	return &ChatHandler{
		planner:      p,
		history:      history,
		orchestrator: orchestrator,
		tasks:        tasks,
		paths:        paths,
		hub:          hub,
	}
}

// ChatRequest represents the chat payload: the full conversation so
// far, newest message last.
type ChatRequest struct {
	History []planner.ChatMessage `json:"history"`
}

func isRegenerationRequest(history []planner.ChatMessage) bool {
	if len(history) == 0 {
		return false
	}
	last := history[len(history)-1]
	if last.Role != "user" {
		return false
	}
	msg := strings.ToLower(last.Content)
	for _, kw := range regenerationKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// Chat handles POST /api/chat?category=
// A regeneration keyword in the latest user message triggers the path
// orchestrator instead of a conversational reply.
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	category := categoryParam(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history := req.History
	// the client opens fresh conversations with a placeholder message
	if len(history) == 1 && history[0].Role == "user" && history[0].Content == "INITIAL_MESSAGE" {
		history = nil
	}

	if isRegenerationRequest(history) {
		if err := h.history.SaveTranscript(userID, category, history); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save conversation"})
			return
		}

		if _, err := h.orchestrator.GeneratePath(c.Request.Context(), userID, category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate path"})
			return
		}
		h.paths.Invalidate(userID, category)
		h.hub.Broadcast(userID, realtime.Event{Type: realtime.EventPathGenerated, Category: category})

		history = append(history, planner.ChatMessage{
			Role:    "assistant",
			Content: "I've generated a new path for you based on our conversation.",
		})
		if err := h.history.SaveTranscript(userID, category, history); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save conversation"})
			return
		}

		views, err := h.tasks.ActivePath(userID, category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"new_path": views})
		return
	}

	bundle, err := h.history.Build(userID, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build context"})
		return
	}

	reply, err := h.planner.Chat(c.Request.Context(), planner.ChatRequest{
		Bundle:  bundle,
		History: history,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is unavailable right now"})
		return
	}

	history = append(history, planner.ChatMessage{Role: "assistant", Content: reply})
	if err := h.history.SaveTranscript(userID, category, history); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetChatHistory handles GET /api/chat_history?category=
func (h *ChatHandler) GetChatHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	history, err := h.history.Transcript(userID, categoryParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// ResetChatRequest represents the reset payload
type ResetChatRequest struct {
	Category string `json:"category" binding:"required"`
}

// ResetChat handles POST /api/reset_chat
func (h *ChatHandler) ResetChat(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req ResetChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Category is required"})
		return
	}

	if err := h.history.ResetTranscript(userID, req.Category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not reset chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
