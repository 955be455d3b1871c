package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// FeedMessage is one event pushed to websocket clients.
type FeedMessage struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Hub maintains the set of connected clients per room and fans broadcast
// messages out to them.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[sharedtypes.RoomID]map[*Client]bool
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[sharedtypes.RoomID]map[*Client]bool),
		logger: logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.room]
	if !ok {
		clients = make(map[*Client]bool)
		h.rooms[c.room] = clients
	}
	clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if clients[c] {
		delete(clients, c)
		close(c.send)
	}
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
}

// Broadcast delivers a message to every client in the room. Clients whose
// send buffer is full are dropped.
func (h *Hub) Broadcast(room sharedtypes.RoomID, msg FeedMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- msg:
		default:
			delete(h.rooms[room], client)
			close(client.send)
			h.logger.Warn("Dropping slow websocket client",
				attr.RoomID("room_id", room),
			)
		}
	}
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

// ClientCount returns the number of clients connected to a room.
func (h *Hub) ClientCount(room sharedtypes.RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
