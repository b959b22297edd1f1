package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHubServer upgrades each request and subscribes it under ?user=
func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.AddClient(r.URL.Query().Get("user"), conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")
	waitForClients(t, hub, 2)

	assert.Equal(t, []string{"alice", "bob"}, hub.Users())

	sent := hub.SendTo("alice", "insights", map[string]int{"total": 3})
	assert.Equal(t, 1, sent)

	_ = alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, alice.ReadJSON(&ev))
	assert.Equal(t, "insights", ev.Type)
	assert.Equal(t, 3, ev.Data["total"])

	// bob receives nothing
	_ = bob.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := bob.ReadMessage()
	assert.Error(t, err)
}

func TestHub_RemoveClient(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	dial(t, srv, "alice")
	waitForClients(t, hub, 1)

	hub.mu.RLock()
	var conn *websocket.Conn
	for c := range hub.clients["alice"] {
		conn = c
	}
	hub.mu.RUnlock()

	hub.RemoveClient("alice", conn)
	assert.Empty(t, hub.Users())
	assert.Equal(t, 0, hub.SendTo("alice", "insights", nil))
}
