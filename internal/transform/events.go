package transform

import (
	"time"

	"github.com/google/uuid"

	"github.com/dayboard-hq/dayboard/backend/internal/models"
)

// EventFromStub converts an extracted event stub into a calendar event.
// A stub with a date and a time becomes a one-hour timed event; a stub with
// only a date starts at midnight with no end; a stub with neither keeps nil
// start and end, which the calendar renders as all-day.
func EventFromStub(e models.EmailEvent) models.CalendarEvent {
	id := e.ID
	if id == "" {
		id = e.EmailID
	}
	if id == "" {
		id = "event-" + uuid.NewString()[:8]
	}

	title := e.EventDescription
	if title == "" {
		title = e.EmailSubject
	}
	if title == "" {
		title = "Untitled event"
	}

	eventType := e.EventType
	if eventType == "" {
		eventType = "other"
	}

	var start, end *time.Time
	if e.EventDate != nil && *e.EventDate != "" {
		if day, err := time.Parse("2006-01-02", *e.EventDate); err == nil {
			startAt := day
			timed := false
			if e.EventTime != nil && *e.EventTime != "" {
				if clock, err := time.Parse("15:04", *e.EventTime); err == nil {
					startAt = day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
					timed = true
				}
			}
			start = &startAt
			if timed {
				endAt := startAt.Add(time.Hour)
				end = &endAt
			}
		}
	}

	event := models.CalendarEvent{
		ID:          id,
		Title:       title,
		Start:       start,
		End:         end,
		Type:        eventType,
		Description: e.EventDescription,
	}
	if e.EventLocation != nil {
		event.Location = *e.EventLocation
	}
	return event
}

// EventsFromStubs transforms a batch of extracted event stubs.
func EventsFromStubs(stubs []models.EmailEvent) []models.CalendarEvent {
	out := make([]models.CalendarEvent, 0, len(stubs))
	for _, e := range stubs {
		out = append(out, EventFromStub(e))
	}
	return out
}
