package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

// errorResponse is the failure payload shared by all endpoints.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSONResponse encodes the payload to a buffer first so a failed
// encode never produces a partial response, then writes status and body.
// Returns false if the response could not be produced.
func WriteJSONResponse(w http.ResponseWriter, status int, payload any) bool {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.Printf("api: failed to encode response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("api: failed to write response: %v", err)
	}
	return true
}

// requireMethod rejects requests with the wrong HTTP method, mirroring the
// response shape of every other error in the API.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	WriteJSONResponse(w, http.StatusMethodNotAllowed, errorResponse{
		Message: "Method " + r.Method + " not allowed",
	})
	return false
}
