package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is pushed to a user's connected clients when their plan state
// changes.
type Event struct {
	Type       string `json:"type"` // "meal_completed" | "plan_completed"
	MealPlanID uint   `json:"mealPlanId"`
	MealID     uint   `json:"mealId,omitempty"`
}

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn

	mu sync.Mutex
}

// Write serializes writes to the connection. gorilla/websocket allows at
// most one concurrent writer, and broadcasts race the keepalive pings
// without this lock.
func (c *WSClient) Write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// EventHub fans events out to every websocket a user has open.
type EventHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *EventHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *EventHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *EventHub) Broadcast(userID uint, event Event) {
	msg, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Write(websocket.TextMessage, msg)
	}
}
