// Package transform converts raw monitor snapshot records into the
// display-ready view-models the dashboard widgets render. Every function
// here is total: however malformed the input record, the output has every
// field populated with a documented fallback.
package transform

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dayboard-hq/dayboard/backend/internal/models"
)

// Matches `"Name" <addr>` and `Name <addr>` sender forms.
var senderNameRe = regexp.MustCompile(`^"?([^"]*?)"?\s*<[^>]+>$`)

// ParseSenderName extracts a display name from a raw sender string.
// For `"Jane Doe" <jane@x.com>` it returns "Jane Doe"; for a bare address
// like `bob@x.com` it returns the local part "bob". A matched name that is
// empty after trimming becomes "Unknown Sender".
func ParseSenderName(sender string) string {
	if m := senderNameRe.FindStringSubmatch(sender); m != nil && m[1] != "" {
		name := strings.TrimSpace(m[1])
		if name == "" {
			return "Unknown Sender"
		}
		return name
	}
	return strings.SplitN(sender, "@", 2)[0]
}

// FormatRelativeTime buckets the elapsed time since timestamp into
// "just now", "{m}m ago", "{h}h ago" or "{d}d ago". The reference time is
// passed in rather than read from the wall clock so callers and tests get
// deterministic output. Unparseable and future timestamps land in the
// "just now" bucket.
func FormatRelativeTime(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "just now"
	}

	secs := int(now.Sub(t).Seconds())
	if secs < 60 {
		return "just now"
	}

	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	return fmt.Sprintf("%dd ago", hours/24)
}

// EmailPriorityTier maps the monitor's integer priority score onto the
// card tier: >=4 high, >=2 normal, otherwise low.
//
// This is deliberately a different policy from PriorityLabel; the card view
// and the badge label use different cutoffs.
func EmailPriorityTier(priority int) models.PriorityTier {
	switch {
	case priority >= 4:
		return models.PriorityHigh
	case priority >= 2:
		return models.PriorityNormal
	default:
		return models.PriorityLow
	}
}

// PriorityLabel maps a priority score onto the capitalized badge label used
// by the expanded list view: >=8 High, >=4 Normal, otherwise Low.
func PriorityLabel(priority int) string {
	switch {
	case priority >= 8:
		return "High"
	case priority >= 4:
		return "Normal"
	default:
		return "Low"
	}
}

// Email converts one raw email record into its display view. It never
// fails: missing or malformed fields get per-field defaults.
func Email(raw models.Email, now time.Time) models.TransformedEmail {
	id := raw.ID
	if id == "" {
		id = "unknown-id"
	}

	references := raw.References
	if references == "" {
		references = id
	}

	sender := raw.Sender
	if sender == "" {
		sender = "Unknown Sender"
	}

	subject := raw.Subject
	if subject == "" {
		subject = "No Subject"
	}

	timestamp := raw.Timestamp
	if timestamp == "" {
		timestamp = now.Format(time.RFC3339)
	}

	// Default to normal priority when the monitor gave us nothing numeric.
	priority := 2
	if raw.Priority.Valid {
		priority = raw.Priority.Value
	}

	content := raw.BodyText
	if content == "" {
		content = raw.Snippet
	}

	summary := raw.Summary
	if summary == "" {
		summary = raw.Snippet
	}
	if summary == "" {
		summary = "No summary available"
	}

	attachments := make([]models.AttachmentView, 0, len(raw.Attachments))
	for _, a := range raw.Attachments {
		attachments = append(attachments, Attachment(a))
	}

	return models.TransformedEmail{
		ID:             id,
		ThreadID:       raw.ThreadID,
		References:     references,
		Sender:         ParseSenderName(sender),
		SenderEmail:    sender,
		Subject:        subject,
		Time:           FormatRelativeTime(timestamp, now),
		Date:           localDate(timestamp, now),
		Priority:       EmailPriorityTier(priority),
		Content:        content,
		Summary:        summary,
		Attachments:    attachments,
		HasAttachments: len(attachments) > 0,
	}
}

// Attachment converts a raw attachment descriptor into its display view.
// There are no real download URLs in the snapshot, so URL is a placeholder.
func Attachment(a models.EmailAttachment) models.AttachmentView {
	id := a.Filename
	if id == "" {
		id = "file-" + uuid.NewString()[:8]
	}

	name := a.Filename
	if name == "" {
		name = "unnamed_file"
	}

	return models.AttachmentView{
		ID:   id,
		Name: name,
		Type: mimeToken(a.MimeType),
		Size: int64(a.SizeBytes),
		URL:  "#",
	}
}

// Emails transforms a batch of raw records. A record that fails to
// transform is logged and dropped; the rest of the batch proceeds.
func Emails(raws []models.Email, now time.Time) []models.TransformedEmail {
	out := make([]models.TransformedEmail, 0, len(raws))
	for i, raw := range raws {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("transform: dropping email %d (id=%q): %v", i, raw.ID, r)
				}
			}()
			out = append(out, Email(raw, now))
		}()
	}
	return out
}

// mimeToken reduces a MIME type to the short token shown next to the
// attachment name: "application/pdf" -> "pdf".
func mimeToken(mimeType string) string {
	if mimeType == "" {
		return "file"
	}
	parts := strings.Split(mimeType, "/")
	token := parts[len(parts)-1]
	if token == "" {
		return "file"
	}
	return token
}

// localDate renders the timestamp as a short date, falling back to the
// reference time when the timestamp does not parse.
func localDate(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		t = now
	}
	return t.Format("1/2/2006")
}
