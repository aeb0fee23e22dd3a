// Package calendar renders events as iCalendar documents.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"eventplanner/internal/domain"

	ical "github.com/arran4/golang-ical"
)

const (
	productID = "-//eventplanner//favorites//EN"
	// DefaultDuration is the assumed length of a talk; events carry only a start time.
	DefaultDuration = time.Hour
)

// Exporter writes favorites as a VCALENDAR with one VEVENT per event.
type Exporter struct {
	duration time.Duration
	now      func() time.Time
}

// NewExporter returns an Exporter. A non-positive duration uses DefaultDuration.
func NewExporter(duration time.Duration) *Exporter {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Exporter{duration: duration, now: time.Now}
}

// Export writes events to w. roomNames maps room IDs to display names used as LOCATION.
func (x *Exporter) Export(w io.Writer, events []*domain.Event, roomNames map[string]string) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := x.now().UTC()
	for _, e := range events {
		ve := cal.AddEvent(e.ID + "@eventplanner")
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.ScheduledAt.UTC())
		ve.SetEndAt(e.ScheduledAt.Add(x.duration).UTC())
		ve.SetSummary(e.Name)
		if desc := describe(e); desc != "" {
			ve.SetDescription(desc)
		}
		if name, ok := roomNames[e.RoomID]; ok {
			ve.SetLocation(name)
		}
	}
	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	return nil
}

func describe(e *domain.Event) string {
	desc := e.Description
	if len(e.Speakers) > 0 {
		if desc != "" {
			desc += "\n"
		}
		desc += "Speakers: " + strings.Join(e.Speakers, ", ")
	}
	return desc
}
