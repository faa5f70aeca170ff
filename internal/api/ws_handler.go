package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	ws "github.com/dayboard-hq/dayboard/backend/internal/websocket"
)

// WebSocketHandler handles the /api/ws endpoint for snapshot-change
// notifications.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler instance.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Same trust model as the rest of the API: a local, single-user
		// dashboard behind no auth.
		return true
	},
}

// Handle upgrades the connection and registers it with the Hub. The client
// only ever receives broadcasts; inbound messages are read and discarded to
// detect disconnects.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocketHandler: failed to upgrade connection: %v", err)
		return
	}

	client := h.hub.Register(conn)
	if client == nil {
		log.Printf("WebSocketHandler: connection rejected (max connections exceeded)")
		return
	}

	go h.readLoop(client)
}

// readLoop reads until the connection closes, then unregisters the client.
func (h *WebSocketHandler) readLoop(client *ws.Client) {
	conn := client.Conn()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.Unregister(client)
}
