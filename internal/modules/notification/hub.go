package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub pushes freshly created notifications to connected admin dashboards.
// One connection per admin; a reconnect replaces the old socket.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(adminID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[adminID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[adminID] = conn
}

func (h *Hub) Unregister(adminID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[adminID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, adminID)
	}
}

// Broadcast sends the message to every connected admin; dead sockets are
// dropped on write failure.
func (h *Hub) Broadcast(message interface{}) {
	h.mutex.RLock()
	ids := make([]int64, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mutex.RUnlock()

	for _, id := range ids {
		h.mutex.RLock()
		conn := h.connections[id]
		h.mutex.RUnlock()
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(message); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
