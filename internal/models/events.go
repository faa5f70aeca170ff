package models

import "time"

// EmailEventsData is the shape of email_events.json: calendar-relevant
// stubs the monitor extracted from processed emails.
type EmailEventsData struct {
	GeneratedAt string       `json:"generated_at"`
	TotalEvents int          `json:"total_events"`
	Events      []EmailEvent `json:"events"`
}

// EmailEvent is one extracted event stub. Date, time and location are
// pointers because the monitor emits null when extraction found nothing.
type EmailEvent struct {
	ID               string      `json:"id"`
	EmailID          string      `json:"email_id,omitempty"`
	EmailSubject     string      `json:"email_subject,omitempty"`
	EmailSender      string      `json:"email_sender,omitempty"`
	EmailDate        string      `json:"email_date,omitempty"`
	EventDescription string      `json:"event_description"`
	EventDate        *string     `json:"event_date"`
	EventTime        *string     `json:"event_time"`
	EventLocation    *string     `json:"event_location"`
	EventType        string      `json:"event_type"`
	Priority         OptionalInt `json:"priority"`
}

// CalendarEvent is the display-ready event consumed by the calendar widget.
// Nil Start/End marks an all-day event.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Type        string     `json:"type"`
	Attendees   []string   `json:"attendees,omitempty"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
}
