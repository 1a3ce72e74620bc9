package realtime

import (
	"encoding/json"
	"sync"
)

// Event is a realtime notification pushed to a user's open sockets.
type Event struct {
	Type     string `json:"type"`
	TaskID   uint   `json:"taskId,omitempty"`
	Category string `json:"category,omitempty"`
	Version  int    `json:"version"`
}

// Event types pushed over the wire.
const (
	EventPathGenerated = "path_generated"
	EventTaskCompleted = "task_completed"
	EventTaskAdded     = "task_added"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts events to them.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[uint]map[Client]struct{}
}

// NewHub constructs an empty hub. One hub serves the whole process and
// is injected wherever events are published.
func NewHub() *Hub {
	return &Hub{
		userIDToClients: make(map[uint]map[Client]struct{}),
	}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if the user has no more clients, cleans up the map.
func (h *Hub) Unregister(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Broadcast sends an event to all clients of a user. Marshal failures
// and client write failures are dropped; delivery is best-effort.
func (h *Hub) Broadcast(userID uint, evt Event) {
	if evt.Version == 0 {
		evt.Version = 1
	}
	message, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		// client write failed; the handler cleans it up on its side
		_ = c.Send(message)
	}
}
