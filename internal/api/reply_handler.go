package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dayboard-hq/dayboard/backend/internal/gmail"
)

// ReplyHandler proxies outbound reply sends to the mail provider.
type ReplyHandler struct {
	sender gmail.Sender
}

// NewReplyHandler creates a new ReplyHandler instance.
func NewReplyHandler(sender gmail.Sender) *ReplyHandler {
	return &ReplyHandler{sender: sender}
}

type sendReplyRequest struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	ThreadID   string `json:"threadId,omitempty"`
	References string `json:"references,omitempty"`
}

type sendReplyResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// SendReply validates the request, then hands it to the sender. Validation
// failures never reach the provider; provider and auth failures surface as
// a 500 with the provider's message. No retries.
func (h *ReplyHandler) SendReply(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req sendReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ReplyHandler: Failed to decode request: %v", err)
		WriteJSONResponse(w, http.StatusBadRequest, errorResponse{
			Message: "Invalid request body",
		})
		return
	}

	if req.To == "" || req.Subject == "" || req.Message == "" {
		WriteJSONResponse(w, http.StatusBadRequest, errorResponse{
			Message: "Missing required fields: to, subject, or message",
		})
		return
	}

	sent, err := h.sender.Send(r.Context(), gmail.SendRequest{
		To:         req.To,
		Subject:    req.Subject,
		Message:    req.Message,
		ThreadID:   req.ThreadID,
		References: req.References,
	})
	if err != nil {
		log.Printf("ReplyHandler: Failed to send reply: %v", err)
		message := err.Error()
		if message == "" {
			message = "Failed to send email"
		}
		WriteJSONResponse(w, http.StatusInternalServerError, errorResponse{
			Message: message,
		})
		return
	}

	WriteJSONResponse(w, http.StatusOK, sendReplyResponse{
		Success: true,
		Data:    sent,
		Message: "Email sent successfully",
	})
}
