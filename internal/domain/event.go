package domain

import (
	"context"
	"time"
)

// Event represents a scheduled talk bound to a room at a specific date and time.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Speakers    []string  `json:"speakers"`
	ScheduledAt time.Time `json:"scheduled_at"`
	RoomID      string    `json:"room_id"`
	BeamerCode  int       `json:"beamer_code"`
	BeamerCheck int       `json:"beamer_check"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Day returns the UTC calendar day of ScheduledAt (midnight UTC).
func (e *Event) Day() time.Time {
	start, _ := DayBounds(e.ScheduledAt)
	return start
}

// TimeOfDay returns the UTC time-of-day projection of ScheduledAt formatted as HH:MM.
func (e *Event) TimeOfDay() string {
	return e.ScheduledAt.UTC().Format("15:04")
}

// BeamerCheckFor returns the self-consistency value stored alongside a beamer code.
func BeamerCheckFor(code int) int {
	return code % 97
}

// DayBounds returns the half-open interval [start, end) of the UTC calendar day containing t.
// Days are always UTC, matching the events_name_day_key index, whatever t's location.
func DayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.UTC().Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end = time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// EventDraft is a candidate event submitted for create or edit. Pointer fields are nil when absent.
// ID is empty in create mode and holds the edited event's identity in edit mode.
type EventDraft struct {
	ID          string
	Name        *string
	Description string
	Speakers    []string
	ScheduledAt *time.Time
	RoomID      *string
	BeamerCode  *int
	PriceCents  *int64
}

// ApplyTo copies the draft's values onto e. Absent pointer fields leave e unchanged.
func (d *EventDraft) ApplyTo(e *Event) {
	if d.Name != nil {
		e.Name = *d.Name
	}
	e.Description = d.Description
	e.Speakers = append([]string(nil), d.Speakers...)
	if d.ScheduledAt != nil {
		e.ScheduledAt = *d.ScheduledAt
	}
	if d.RoomID != nil {
		e.RoomID = *d.RoomID
	}
	if d.BeamerCode != nil {
		e.BeamerCode = *d.BeamerCode
		e.BeamerCheck = BeamerCheckFor(*d.BeamerCode)
	}
	if d.PriceCents != nil {
		e.PriceCents = *d.PriceCents
	}
}

// EventQuery is the read-only lookup used for conflict detection.
// Find methods return (nil, nil) / an empty slice when nothing matches.
type EventQuery interface {
	FindByRoomAndDateTime(ctx context.Context, roomID string, at time.Time) (*Event, error)
	// FindByNameAndDay matches name case-insensitively within [day 00:00, next day 00:00).
	FindByNameAndDay(ctx context.Context, name string, day time.Time) ([]*Event, error)
}

// EventRepository defines the interface for event storage.
// Create and Update return ErrSlotTaken or ErrNameDayTaken when a uniqueness constraint is hit.
type EventRepository interface {
	EventQuery
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	ListByDay(ctx context.Context, day time.Time) ([]*Event, error)
	ListByRoomID(ctx context.Context, roomID string) ([]*Event, error)
}

// EventService defines the business logic for managing events.
// Create and Update return field violations (and a nil event) when the draft is rejected.
type EventService interface {
	// ListEvents returns one page of events ordered by date-time plus the total count.
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListEventsOnDay(ctx context.Context, day time.Time) ([]*Event, error)
	// ListEventsInRoom returns the room's events ordered by date-time, or ErrNotFound for an unknown room.
	ListEventsInRoom(ctx context.Context, roomID string) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, draft *EventDraft) (*Event, []FieldViolation, error)
	UpdateEvent(ctx context.Context, id string, draft *EventDraft) (*Event, []FieldViolation, error)
}
