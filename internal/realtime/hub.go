// Package realtime pushes refreshed state to websocket subscribers
package realtime

import (
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WriteTimeout bounds a single push to one client
const WriteTimeout = 10 * time.Second

// Event is the envelope for every pushed message
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client serializes writes; a websocket connection allows one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return c.conn.WriteJSON(v)
}

// Hub tracks websocket connections per user
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]*client
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*websocket.Conn]*client)}
}

// AddClient subscribes conn to pushes for userID
func (h *Hub) AddClient(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[userID]
	if !ok {
		conns = make(map[*websocket.Conn]*client)
		h.clients[userID] = conns
	}
	conns[conn] = &client{conn: conn}
}

// RemoveClient unsubscribes and closes conn
func (h *Hub) RemoveClient(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
	h.mu.Unlock()
	_ = conn.Close()
}

// Users returns the ids with at least one live connection, sorted
func (h *Hub) Users() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := make([]string, 0, len(h.clients))
	for u := range h.clients {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// ClientCount returns the number of live connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}

// SendTo pushes an event to every connection of userID. Connections that fail
// to accept the write are dropped. Returns the number of successful writes.
func (h *Hub) SendTo(userID, eventType string, data interface{}) int {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[userID]))
	for _, c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	ev := Event{Type: eventType, Data: data}
	for _, c := range targets {
		if err := c.writeJSON(ev); err != nil {
			h.RemoveClient(userID, c.conn)
			continue
		}
		sent++
	}
	return sent
}

// BroadcastJSON pushes an event to every connection
func (h *Hub) BroadcastJSON(eventType string, data interface{}) {
	for _, u := range h.Users() {
		h.SendTo(u, eventType, data)
	}
}
