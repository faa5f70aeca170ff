package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailv1 "google.golang.org/api/gmail/v1"

	"github.com/dayboard-hq/dayboard/backend/internal/gmail"
)

// spySender records sends and returns a canned result or error.
type spySender struct {
	requests []gmail.SendRequest
	result   *gmailv1.Message
	err      error
}

func (s *spySender) Send(_ context.Context, req gmail.SendRequest) (*gmailv1.Message, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func postReply(h *ReplyHandler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/send-reply", strings.NewReader(body))
	h.SendReply(rec, req)
	return rec
}

func TestReplyHandler_SendReply(t *testing.T) {
	t.Run("success wraps the provider result", func(t *testing.T) {
		sender := &spySender{result: &gmailv1.Message{Id: "sent-1", ThreadId: "thread-9"}}
		h := NewReplyHandler(sender)

		rec := postReply(h, `{
			"to": "jane@x.com",
			"subject": "Re: hi",
			"message": "ok",
			"threadId": "thread-9",
			"references": "<ref-1@mail>"
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Email sent successfully", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "sent-1", data["id"])

		require.Len(t, sender.requests, 1)
		sent := sender.requests[0]
		assert.Equal(t, "jane@x.com", sent.To)
		assert.Equal(t, "thread-9", sent.ThreadID)
		assert.Equal(t, "<ref-1@mail>", sent.References)
	})

	t.Run("invalid JSON body is a 400", func(t *testing.T) {
		sender := &spySender{}
		h := NewReplyHandler(sender)

		rec := postReply(h, `{broken`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, rec)["message"])
		assert.Empty(t, sender.requests)
	})

	t.Run("missing subject is a 400 and never reaches the sender", func(t *testing.T) {
		sender := &spySender{}
		h := NewReplyHandler(sender)

		rec := postReply(h, `{"to": "jane@x.com", "message": "ok"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing required fields: to, subject, or message", decodeBody(t, rec)["message"])
		assert.Empty(t, sender.requests)
	})

	t.Run("thread id and references are optional", func(t *testing.T) {
		sender := &spySender{result: &gmailv1.Message{Id: "sent-2"}}
		h := NewReplyHandler(sender)

		rec := postReply(h, `{"to": "jane@x.com", "subject": "s", "message": "m"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, sender.requests, 1)
		assert.Empty(t, sender.requests[0].ThreadID)
	})

	t.Run("provider failure is a 500 with the provider message", func(t *testing.T) {
		sender := &spySender{err: errors.New("refresh token: invalid_grant")}
		h := NewReplyHandler(sender)

		rec := postReply(h, `{"to": "jane@x.com", "subject": "s", "message": "m"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "refresh token: invalid_grant", body["message"])
	})

	t.Run("GET is rejected", func(t *testing.T) {
		h := NewReplyHandler(&spySender{})

		rec := httptest.NewRecorder()
		h.SendReply(rec, httptest.NewRequest(http.MethodGet, "/api/send-reply", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	})
}
