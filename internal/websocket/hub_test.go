package websocket

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

// dialTestServer starts an httptest server that registers every incoming
// connection with the hub, then dials it.
func dialTestServer(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ActiveConnections() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d active connections, have %d", want, hub.ActiveConnections())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(10)

	first := dialTestServer(t, hub)
	second := dialTestServer(t, hub)
	waitForConnections(t, hub, 2)

	hub.Broadcast([]byte(`{"type":"snapshot_updated","file":"emails_monitor.json"}`))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"snapshot_updated","file":"emails_monitor.json"}`, string(msg))
	}
}

func TestHub_ConnectionLimit(t *testing.T) {
	hub := NewHub(1)

	dialTestServer(t, hub)
	waitForConnections(t, hub, 1)

	// Second connection is over the cap; the server closes it with a policy
	// violation and the hub stays at one client.
	over := dialTestServer(t, hub)
	require.NoError(t, over.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := over.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation))

	assert.Equal(t, 1, hub.ActiveConnections())
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(10)

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	registered := make(chan *Client, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		registered <- hub.Register(conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := <-registered
	require.NotNil(t, client)
	assert.Equal(t, 1, hub.ActiveConnections())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ActiveConnections())

	// Unregistering nil is a no-op.
	hub.Unregister(nil)
	assert.Equal(t, 0, hub.ActiveConnections())
}
