package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dayboard-hq/dayboard/backend/internal/snapshot"
)

// SnapshotsHandler serves the raw monitor snapshots. Each request is one
// whole-file read; the response gets a fresh last_updated stamp and a
// recomputed record count, neither of which is written back to disk.
type SnapshotsHandler struct {
	store *snapshot.Store
	now   func() time.Time
}

// NewSnapshotsHandler creates a new SnapshotsHandler instance.
func NewSnapshotsHandler(store *snapshot.Store) *SnapshotsHandler {
	return &SnapshotsHandler{
		store: store,
		now:   time.Now,
	}
}

// snapshotResponse is the success payload for all snapshot endpoints.
type snapshotResponse struct {
	Success     bool   `json:"success"`
	Data        any    `json:"data"`
	LastUpdated string `json:"last_updated"`
}

// GetEmails serves emails_monitor.json. Registered at both /emails and
// /api/emails; the SPA historically used both paths.
func (h *SnapshotsHandler) GetEmails(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, "Email data file not found", "total_emails", "emails", h.store.LoadEmailsDocument)
}

// GetEvents serves email_events.json.
func (h *SnapshotsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, "Event data file not found", "total_events", "events", h.store.LoadEventsDocument)
}

// GetMentions serves slack_mentions_report.json.
func (h *SnapshotsHandler) GetMentions(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, "Mentions data file not found", "total_mentions", "mentions", h.store.LoadMentionsDocument)
}

func (h *SnapshotsHandler) serveDocument(
	w http.ResponseWriter,
	r *http.Request,
	missingMsg, countKey, listKey string,
	load func() (map[string]any, string, error),
) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	doc, path, err := load()
	if err != nil {
		var notFound *snapshot.NotFoundError
		if errors.As(err, &notFound) {
			WriteJSONResponse(w, http.StatusNotFound, errorResponse{
				Message: missingMsg,
				Path:    notFound.Path,
			})
			return
		}

		log.Printf("SnapshotsHandler: Failed to load %s: %v", path, err)
		WriteJSONResponse(w, http.StatusInternalServerError, errorResponse{
			Message: "Internal server error",
			Error:   err.Error(),
		})
		return
	}

	// Stamp the response only; the file on disk is never touched.
	now := h.now().UTC().Format(time.RFC3339)
	doc["last_updated"] = now
	if list, ok := doc[listKey].([]any); ok {
		doc[countKey] = len(list)
	}

	WriteJSONResponse(w, http.StatusOK, snapshotResponse{
		Success:     true,
		Data:        doc,
		LastUpdated: now,
	})
}
