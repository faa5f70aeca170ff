package transform

import (
	"time"

	"github.com/dayboard-hq/dayboard/backend/internal/models"
)

// MentionPriority derives the display priority of a Slack mention from its
// mention type. The priority is never stored on the record.
func MentionPriority(m models.SlackMention) string {
	switch m.MentionType {
	case "direct":
		return "high"
	case "channel":
		return "medium"
	default:
		return "low"
	}
}

// FormatMentionDate renders a mention's ISO date the way the widget shows
// it, e.g. "Sep 20, 03:04 PM". An unparseable date is returned unchanged.
func FormatMentionDate(dateString string) string {
	t, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		return dateString
	}
	return t.Format("Jan 2, 03:04 PM")
}

// Mention converts one raw Slack mention into its display view.
func Mention(m models.SlackMention) models.MentionView {
	userName := m.UserName
	if userName == "" {
		userName = "Unknown User"
	}

	channel := m.ChannelName
	if channel == "" {
		channel = "general"
	}

	return models.MentionView{
		ID:       m.ID,
		UserName: userName,
		Text:     m.Text,
		Channel:  channel,
		Date:     FormatMentionDate(m.Date),
		Priority: MentionPriority(m),
		IsRead:   m.IsRead,
	}
}

// Mentions transforms a batch of raw mentions.
func Mentions(raws []models.SlackMention) []models.MentionView {
	out := make([]models.MentionView, 0, len(raws))
	for _, m := range raws {
		out = append(out, Mention(m))
	}
	return out
}
