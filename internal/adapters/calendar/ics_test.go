package calendar

import (
	"bytes"
	"testing"
	"time"

	"eventplanner/internal/domain"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	at := time.Date(2027, 6, 10, 10, 0, 0, 0, time.UTC)
	events := []*domain.Event{
		{ID: "ev-1", Name: "Intro", Description: "Opening", Speakers: []string{"Alice", "Bob"}, ScheduledAt: at, RoomID: "room-1"},
		{ID: "ev-2", Name: "Closing", ScheduledAt: at.Add(6 * time.Hour), RoomID: "room-unknown"},
	}
	x := NewExporter(90 * time.Minute)
	x.now = func() time.Time { return at.Add(-24 * time.Hour) }

	var buf bytes.Buffer
	require.NoError(t, x.Export(&buf, events, map[string]string{"room-1": "A101"}))

	cal, err := ical.ParseCalendar(&buf)
	require.NoError(t, err)
	vevents := cal.Events()
	require.Len(t, vevents, 2)

	first := vevents[0]
	assert.Equal(t, "ev-1@eventplanner", first.Id())
	assert.Equal(t, "Intro", first.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "A101", first.GetProperty(ical.ComponentPropertyLocation).Value)
	start, err := first.GetStartAt()
	require.NoError(t, err)
	assert.True(t, at.Equal(start))
	end, err := first.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, end.Sub(start))

	second := vevents[1]
	assert.Nil(t, second.GetProperty(ical.ComponentPropertyLocation))
	assert.Nil(t, second.GetProperty(ical.ComponentPropertyDescription))
}

func TestExporter_Export_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(0).Export(&buf, nil, nil))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Opening\nSpeakers: Alice, Bob", describe(&domain.Event{Description: "Opening", Speakers: []string{"Alice", "Bob"}}))
	assert.Equal(t, "Speakers: Alice", describe(&domain.Event{Speakers: []string{"Alice"}}))
	assert.Equal(t, "", describe(&domain.Event{}))
}
