package models

// SlackMentionsReport is the shape of slack_mentions_report.json.
type SlackMentionsReport struct {
	GeneratedAt         string          `json:"generated_at"`
	TotalMentions       int             `json:"total_mentions"`
	ActualMentionsCount int             `json:"actual_mentions_count"`
	Mentions            []SlackMention  `json:"mentions"`
	Summary             MentionsSummary `json:"summary"`
}

// SlackMention is one unread mention collected by the Slack monitor.
// IsRead exists only in transient UI state; the report never carries it as
// true, and nothing here writes it back.
type SlackMention struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	Date        string `json:"date"`
	User        string `json:"user"`
	UserName    string `json:"user_name"`
	Text        string `json:"text"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	ChannelType string `json:"channel_type"`
	MentionType string `json:"mention_type"`
	MessageType string `json:"message_type"`
	IsRead      bool   `json:"is_read,omitempty"`
}

// MentionsSummary is the AI-generated digest block of the mentions report.
type MentionsSummary struct {
	AISummary        string         `json:"ai_summary"`
	TotalCount       int            `json:"total_count"`
	MentionBreakdown map[string]any `json:"mention_breakdown"`
	PriorityLevel    string         `json:"priority_level"`
	KeyActions       []string       `json:"key_actions"`
}
