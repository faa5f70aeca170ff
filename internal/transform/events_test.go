package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayboard-hq/dayboard/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestEventFromStub_Timed(t *testing.T) {
	stub := models.EmailEvent{
		ID:               "ev-1",
		EventDescription: "Team standup",
		EventDate:        strPtr("2025-09-22"),
		EventTime:        strPtr("10:00"),
		EventLocation:    strPtr("Conference Room A"),
		EventType:        "meeting",
	}

	got := EventFromStub(stub)

	assert.Equal(t, "ev-1", got.ID)
	assert.Equal(t, "Team standup", got.Title)
	assert.Equal(t, "meeting", got.Type)
	assert.Equal(t, "Conference Room A", got.Location)

	require.NotNil(t, got.Start)
	require.NotNil(t, got.End)
	assert.Equal(t, time.Date(2025, 9, 22, 10, 0, 0, 0, time.UTC), *got.Start)
	assert.Equal(t, time.Hour, got.End.Sub(*got.Start))
}

func TestEventFromStub_DateOnly(t *testing.T) {
	got := EventFromStub(models.EmailEvent{
		ID:               "ev-2",
		EventDescription: "Invoice due",
		EventDate:        strPtr("2025-09-30"),
		EventType:        "deadline",
	})

	require.NotNil(t, got.Start)
	assert.Equal(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), *got.Start)
	assert.Nil(t, got.End)
}

func TestEventFromStub_NoDateIsAllDay(t *testing.T) {
	got := EventFromStub(models.EmailEvent{
		ID:               "ev-3",
		EventDescription: "Sometime soon",
	})

	assert.Nil(t, got.Start)
	assert.Nil(t, got.End)
	assert.Equal(t, "other", got.Type)
}

func TestEventFromStub_Fallbacks(t *testing.T) {
	t.Run("title falls back to email subject", func(t *testing.T) {
		got := EventFromStub(models.EmailEvent{ID: "ev-4", EmailSubject: "Re: contract"})
		assert.Equal(t, "Re: contract", got.Title)
	})

	t.Run("missing id gets a random one", func(t *testing.T) {
		got := EventFromStub(models.EmailEvent{EventDescription: "x"})
		assert.Contains(t, got.ID, "event-")
	})

	t.Run("unparseable date is all-day", func(t *testing.T) {
		got := EventFromStub(models.EmailEvent{ID: "ev-5", EventDate: strPtr("next tuesday")})
		assert.Nil(t, got.Start)
	})
}
