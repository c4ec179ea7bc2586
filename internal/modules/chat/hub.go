package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn pairs a websocket connection with a write lock. Gorilla connections
// support at most one concurrent writer of data frames; pushes arrive from
// handler goroutines of other users, so every WriteJSON must go through the
// lock. Control frames (ping, close) are exempt and use WriteControl directly.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *wsConn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// Hub tracks one live websocket connection per user. A reconnect replaces the
// previous connection.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]*wsConn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]*wsConn)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.conns[userID]; ok {
		_ = old.ws.Close()
	}
	h.conns[userID] = &wsConn{ws: conn}
}

// Unregister drops the user's entry only if it still points at conn. The read
// loop of a replaced connection calls this after a reconnect already took the
// slot; it must not evict the new connection.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.conns[userID]; ok && cur.ws == conn {
		_ = cur.ws.Close()
		delete(h.conns, userID)
	}
}

// Push writes an event to the user's connection and reports whether it was
// delivered. A write failure drops the connection.
func (h *Hub) Push(userID int64, event interface{}) bool {
	h.mu.RLock()
	conn, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	if err := conn.writeJSON(event); err != nil {
		h.Unregister(userID, conn.ws)
		return false
	}
	return true
}

func (h *Hub) Online(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.conns[userID]
	return ok
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conn := range h.conns {
		_ = conn.ws.Close()
		delete(h.conns, userID)
	}
}
