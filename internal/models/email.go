package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EmailMonitorData is the shape of emails_monitor.json, written by the
// external monitor process. The backend only ever reads it.
type EmailMonitorData struct {
	MonitorStarted string        `json:"monitor_started"`
	LastUpdated    string        `json:"last_updated"`
	TotalEmails    int           `json:"total_emails"`
	Config         MonitorConfig `json:"config"`
	Emails         []Email       `json:"emails"`
}

// MonitorConfig mirrors the monitor's own settings block. It is passed
// through to the frontend untouched.
type MonitorConfig struct {
	PollInterval         int    `json:"poll_interval"`
	EnableSummary        bool   `json:"enable_summary"`
	ProcessedLabel       string `json:"processed_label"`
	JSONFile             string `json:"json_file"`
	EventsJSONFile       string `json:"events_json_file"`
	UserinfoFile         string `json:"userinfo_file"`
	MaxContentLength     int    `json:"max_content_length"`
	SummaryRetryAttempts int    `json:"summary_retry_attempts"`
	SummaryRetryDelay    int    `json:"summary_retry_delay"`
}

// Email is one raw record from the monitor snapshot. The monitor gives no
// schema guarantees, so the fields that routinely show up malformed use
// tolerant decode types instead of failing the whole document.
type Email struct {
	ID              string         `json:"id"`
	ThreadID        string         `json:"thread_id"`
	References      string         `json:"references,omitempty"`
	Snippet         string         `json:"snippet"`
	Sender          string         `json:"sender"`
	Recipient       string         `json:"recipient"`
	Subject         string         `json:"subject"`
	Date            string         `json:"date"`
	Timestamp       string         `json:"timestamp"`
	BodyText        string         `json:"body_text"`
	BodyHTML        string         `json:"body_html"`
	Attachments     AttachmentList `json:"attachments"`
	Summary         string         `json:"summary"`
	Priority        OptionalInt    `json:"priority"`
	EventsExtracted []EmailEvent   `json:"events_extracted"`
}

// EmailAttachment is a raw attachment descriptor from the snapshot.
type EmailAttachment struct {
	Filename  string   `json:"filename"`
	SizeBytes ByteSize `json:"size_bytes"`
	MimeType  string   `json:"mime_type"`
}

// AttachmentList tolerates a non-array attachments field (the monitor has
// been seen emitting null and bare objects there) by decoding to an empty
// list instead of erroring.
type AttachmentList []EmailAttachment

func (l *AttachmentList) UnmarshalJSON(b []byte) error {
	var items []EmailAttachment
	if err := json.Unmarshal(b, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// OptionalInt decodes a JSON value that should be an integer but may be
// missing, null, a float, a numeric string, or garbage. Valid reports
// whether a usable number was present.
type OptionalInt struct {
	Value int
	Valid bool
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	o.Value, o.Valid = 0, false

	// Unmarshal treats null as a no-op success, so it must be ruled out
	// before the numeric probe.
	if string(b) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		o.Value, o.Valid = int(f), true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			o.Value, o.Valid = n, true
		}
	}
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ByteSize decodes an attachment size that may be malformed. Anything that
// is not a non-negative number comes out as 0.
type ByteSize int64

func (s *ByteSize) UnmarshalJSON(b []byte) error {
	*s = 0

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	if f > 0 {
		*s = ByteSize(f)
	}
	return nil
}
