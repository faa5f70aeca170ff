package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeProvider bundles httptest servers standing in for the OAuth token
// endpoint and the Gmail REST API, counting the calls each receives.
type FakeProvider struct {
	TokenServer *httptest.Server
	APIServer   *httptest.Server

	// RefreshStatus lets a test force the token endpoint to fail.
	RefreshStatus int

	mu           sync.Mutex
	refreshCalls int
	sendCalls    int
	lastRaw      string
	lastThreadID string
}

// NewFakeProvider starts both servers and registers cleanup on the test.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()

	p := &FakeProvider{RefreshStatus: http.StatusOK}

	p.TokenServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.refreshCalls++
		status := p.RefreshStatus
		p.mu.Unlock()

		if status != http.StatusOK {
			http.Error(w, `{"error":"invalid_grant"}`, status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"access_token":"refreshed-access","token_type":"Bearer","expires_in":3600}`)
	}))

	p.APIServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Raw      string `json:"raw"`
			ThreadID string `json:"threadId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		p.mu.Lock()
		p.sendCalls++
		p.lastRaw = body.Raw
		p.lastThreadID = body.ThreadID
		p.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":"sent-message-1","threadId":%q}`, body.ThreadID)
	}))

	t.Cleanup(func() {
		p.TokenServer.Close()
		p.APIServer.Close()
	})
	return p
}

// RefreshCalls returns how many times the token endpoint was hit.
func (p *FakeProvider) RefreshCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshCalls
}

// SendCalls returns how many times the send endpoint was hit.
func (p *FakeProvider) SendCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sendCalls
}

// LastRaw returns the raw message of the most recent send.
func (p *FakeProvider) LastRaw() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRaw
}

// LastThreadID returns the thread ID of the most recent send.
func (p *FakeProvider) LastThreadID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastThreadID
}

// FailRefresh makes subsequent token refresh attempts fail.
func (p *FakeProvider) FailRefresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RefreshStatus = http.StatusBadRequest
}
