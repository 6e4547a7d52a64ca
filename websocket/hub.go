package websocket

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Hub pushes persisted notifications to connected clients. Delivery is
// best-effort; a missed push is still visible through the REST listing.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]*websocket.Conn)}
}

func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[userID]; ok {
		old.Close()
	}
	h.clients[userID] = conn
	log.Debug().Str("user_id", userID.String()).Msg("ws client registered")
}

func (h *Hub) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[userID]; ok && current == conn {
		delete(h.clients, userID)
	}
}

func (h *Hub) Push(userID uuid.UUID, payload interface{}) {
	h.mu.RLock()
	conn, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.WriteJSON(payload); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("ws push failed")
		conn.Close()
		h.mu.Lock()
		if current, stillOk := h.clients[userID]; stillOk && current == conn {
			delete(h.clients, userID)
		}
		h.mu.Unlock()
	}
}
