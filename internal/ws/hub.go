package ws

import (
	"encoding/json"
	"sync"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
)

type EventType string

const (
	EventCreated EventType = "todo.created"
	EventUpdated EventType = "todo.updated"
	EventToggled EventType = "todo.toggled"
	EventDeleted EventType = "todo.deleted"
)

// TodoEvent is broadcast to connected dashboards after a successful mutation.
// Deleted events carry only the id.
type TodoEvent struct {
	Type EventType    `json:"type"`
	Todo *domain.Todo `json:"todo,omitempty"`
	ID   int64        `json:"id,omitempty"`
}

// Hub fans todo events out to connected dashboard clients. Slow clients are
// dropped rather than allowed to back up the broadcast loop.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan TodoEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan TodoEvent, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			payload, err := json.Marshal(ev)
			if err != nil {
				logger.Error("failed to marshal todo event", "error", err)
				continue
			}
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for broadcast. Fire-and-forget: when the queue is
// full the event is dropped, clients resync on the next list fetch.
func (h *Hub) Publish(ev TodoEvent) {
	select {
	case h.broadcast <- ev:
	default:
		logger.Warn("todo event dropped, broadcast queue full", "type", ev.Type)
	}
}

// ClientCount reports connected clients (used by tests and readiness checks).
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
