package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dayboard-hq/dayboard/backend/internal/snapshot"
	"github.com/dayboard-hq/dayboard/backend/internal/transform"
)

// ViewsHandler serves the transformed, display-ready view-models so the
// widgets can render without running the derivation pipeline client-side.
type ViewsHandler struct {
	store *snapshot.Store
	now   func() time.Time
}

// NewViewsHandler creates a new ViewsHandler instance.
func NewViewsHandler(store *snapshot.Store) *ViewsHandler {
	return &ViewsHandler{
		store: store,
		now:   time.Now,
	}
}

// GetEmailViews serves the transformed email list.
func (h *ViewsHandler) GetEmailViews(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	emails, err := h.store.LoadEmails()
	if !h.handleLoadError(w, "Email data file not found", err) {
		return
	}

	now := h.now()
	WriteJSONResponse(w, http.StatusOK, snapshotResponse{
		Success:     true,
		Data:        transform.Emails(emails, now),
		LastUpdated: now.UTC().Format(time.RFC3339),
	})
}

// GetEventViews serves calendar events derived from the extracted stubs.
func (h *ViewsHandler) GetEventViews(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	stubs, err := h.store.LoadEvents()
	if !h.handleLoadError(w, "Event data file not found", err) {
		return
	}

	WriteJSONResponse(w, http.StatusOK, snapshotResponse{
		Success:     true,
		Data:        transform.EventsFromStubs(stubs),
		LastUpdated: h.now().UTC().Format(time.RFC3339),
	})
}

// GetMentionViews serves the transformed Slack mentions along with the
// report's AI summary block.
func (h *ViewsHandler) GetMentionViews(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	report, err := h.store.LoadMentions()
	if !h.handleLoadError(w, "Mentions data file not found", err) {
		return
	}

	payload := struct {
		Mentions any `json:"mentions"`
		Summary  any `json:"summary"`
	}{
		Mentions: transform.Mentions(report.Mentions),
		Summary:  report.Summary,
	}

	WriteJSONResponse(w, http.StatusOK, snapshotResponse{
		Success:     true,
		Data:        payload,
		LastUpdated: h.now().UTC().Format(time.RFC3339),
	})
}

// handleLoadError writes the error response for a failed snapshot load.
// Returns true when there was no error and the handler should proceed.
func (h *ViewsHandler) handleLoadError(w http.ResponseWriter, missingMsg string, err error) bool {
	if err == nil {
		return true
	}

	var notFound *snapshot.NotFoundError
	if errors.As(err, &notFound) {
		WriteJSONResponse(w, http.StatusNotFound, errorResponse{
			Message: missingMsg,
			Path:    notFound.Path,
		})
		return false
	}

	log.Printf("ViewsHandler: Failed to load snapshot: %v", err)
	WriteJSONResponse(w, http.StatusInternalServerError, errorResponse{
		Message: "Internal server error",
		Error:   err.Error(),
	})
	return false
}
