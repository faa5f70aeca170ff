package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/dayboard-hq/dayboard/backend/internal/api"
	"github.com/dayboard-hq/dayboard/backend/internal/config"
	"github.com/dayboard-hq/dayboard/backend/internal/gmail"
	"github.com/dayboard-hq/dayboard/backend/internal/snapshot"
	ws "github.com/dayboard-hq/dayboard/backend/internal/websocket"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := snapshot.NewStore(cfg.SnapshotDir)
	hub := ws.NewHub(10)

	watcher := snapshot.NewWatcher(cfg.SnapshotDir, hub, cfg.WatchInterval)
	go watcher.Run(context.Background())

	server := NewServer(cfg, store, hub)

	address := ":" + cfg.Port
	log.Printf("Dayboard backend server starting on %s (environment: %s)", address, cfg.Environment)

	if err := http.ListenAndServe(address, server); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// NewServer creates and returns a new HTTP handler for the Dayboard API server.
func NewServer(cfg *config.Config, store *snapshot.Store, hub *ws.Hub) http.Handler {
	sender := gmail.NewClient(cfg.GmailTokenPath, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	snapshotsHandler := api.NewSnapshotsHandler(store)
	viewsHandler := api.NewViewsHandler(store)
	replyHandler := api.NewReplyHandler(sender)
	wsHandler := api.NewWebSocketHandler(hub)

	mux := http.NewServeMux()

	mux.HandleFunc("/", handleRoot)

	// The SPA's dev proxy historically used both the bare and /api paths.
	mux.HandleFunc("/emails", snapshotsHandler.GetEmails)
	mux.HandleFunc("/api/emails", snapshotsHandler.GetEmails)
	mux.HandleFunc("/api/events", snapshotsHandler.GetEvents)
	mux.HandleFunc("/api/slack-mentions", snapshotsHandler.GetMentions)

	mux.HandleFunc("/api/emails/view", viewsHandler.GetEmailViews)
	mux.HandleFunc("/api/events/view", viewsHandler.GetEventViews)
	mux.HandleFunc("/api/slack-mentions/view", viewsHandler.GetMentionViews)

	mux.HandleFunc("/api/send-reply", replyHandler.SendReply)
	mux.HandleFunc("/api/ws", wsHandler.Handle)

	return mux
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Dayboard API is running")
}
