package gmail

import (
	"encoding/base64"
	"strings"
)

// BuildReplyMessage constructs the minimal RFC 822 envelope the Gmail send
// endpoint accepts as a raw message: headers, a blank line, then the body.
// When a thread ID is present, In-Reply-To and References headers are added
// so the provider threads the reply; References falls back to the thread ID
// if the caller gave no explicit references string.
func BuildReplyMessage(req SendRequest) string {
	lines := []string{
		"To: " + req.To,
		"Content-Type: text/plain; charset=utf-8",
		"MIME-Version: 1.0",
		"Subject: " + req.Subject,
	}

	if req.ThreadID != "" {
		references := req.References
		if references == "" {
			references = req.ThreadID
		}
		lines = append(lines,
			"In-Reply-To: "+req.ThreadID,
			"References: "+references,
		)
	}

	lines = append(lines, "", req.Message)
	return strings.Join(lines, "\n")
}

// EncodeMessage base64url-encodes the envelope without padding, which is
// what the provider expects in the raw field.
func EncodeMessage(envelope string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(envelope))
}
