package models

// PriorityTier is the display tier derived from an integer priority score.
type PriorityTier string

const (
	PriorityHigh   PriorityTier = "high"
	PriorityNormal PriorityTier = "normal"
	PriorityLow    PriorityTier = "low"
)

// TransformedEmail is the display-ready view of a raw Email. Every field is
// guaranteed populated; the transformer substitutes documented fallbacks for
// anything missing or malformed.
type TransformedEmail struct {
	ID             string           `json:"id"`
	ThreadID       string           `json:"threadId,omitempty"`
	References     string           `json:"references,omitempty"`
	Sender         string           `json:"sender"`
	SenderEmail    string           `json:"senderEmail"`
	Subject        string           `json:"subject"`
	Time           string           `json:"time"`
	Date           string           `json:"date"`
	Priority       PriorityTier     `json:"priority"`
	Content        string           `json:"content"`
	Summary        string           `json:"summary"`
	Attachments    []AttachmentView `json:"attachments"`
	HasAttachments bool             `json:"hasAttachments"`
}

// AttachmentView is the display form of an attachment descriptor.
type AttachmentView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// MentionView is the display form of a Slack mention. Priority is derived
// from the mention type, never stored.
type MentionView struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
	Channel  string `json:"channel"`
	Date     string `json:"date"`
	Priority string `json:"priority"`
	IsRead   bool   `json:"isRead"`
}
