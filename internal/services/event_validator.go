package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

// EventValidator applies the business rules for creating and editing events.
// It holds no state besides the clock and is safe for concurrent use.
type EventValidator struct {
	now func() time.Time
}

// NewEventValidator returns an EventValidator. A nil now uses time.Now.
func NewEventValidator(now func() time.Time) *EventValidator {
	if now == nil {
		now = time.Now
	}
	return &EventValidator{now: now}
}

// Validate returns the violations of draft. The result is empty iff the draft is acceptable.
// Conflict rules whose inputs are missing are skipped. An error is returned only when
// lookup fails.
func (v *EventValidator) Validate(ctx context.Context, draft *domain.EventDraft, lookup domain.EventQuery) ([]domain.FieldViolation, error) {
	var out []domain.FieldViolation

	if draft.ScheduledAt != nil && !draft.ScheduledAt.After(v.now()) {
		out = append(out, domain.FieldViolation{
			Field:   domain.FieldScheduledAt,
			Kind:    domain.KindPastDateTime,
			Message: "date and time must be in the future",
		})
	}

	if draft.Name != nil && strings.TrimSpace(*draft.Name) == "" {
		out = append(out, domain.FieldViolation{
			Field:   domain.FieldName,
			Kind:    domain.KindBlankName,
			Message: "name must not be blank",
		})
	}

	if sv := checkSpeakers(draft.Speakers); sv != nil {
		out = append(out, *sv)
	}

	if draft.ScheduledAt != nil && draft.RoomID != nil && *draft.RoomID != "" {
		found, err := lookup.FindByRoomAndDateTime(ctx, *draft.RoomID, *draft.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("find event by room and time: %w", err)
		}
		if found != nil && (draft.ID == "" || found.ID != draft.ID) {
			out = append(out, domain.FieldViolation{
				Field:   domain.FieldScheduledAt,
				Kind:    domain.KindSlotConflict,
				Message: "another event is already scheduled in this room at this time",
			})
		}
	}

	if draft.Name != nil && draft.ScheduledAt != nil {
		day, _ := domain.DayBounds(*draft.ScheduledAt)
		matches, err := lookup.FindByNameAndDay(ctx, *draft.Name, day)
		if err != nil {
			return nil, fmt.Errorf("find events by name and day: %w", err)
		}
		for _, m := range matches {
			if draft.ID == "" || m.ID != draft.ID {
				out = append(out, domain.FieldViolation{
					Field:   domain.FieldName,
					Kind:    domain.KindNameDayConflict,
					Message: "an event with this name already exists on this day",
				})
				break
			}
		}
	}

	return out, nil
}

// checkSpeakers reports at most one speaker violation, in priority order:
// no speakers, blank first speaker, duplicate speakers.
func checkSpeakers(speakers []string) *domain.FieldViolation {
	if len(speakers) == 0 {
		return &domain.FieldViolation{
			Field:   domain.FieldSpeakers,
			Kind:    domain.KindNoSpeakers,
			Message: "at least one speaker is required",
		}
	}
	if strings.TrimSpace(speakers[0]) == "" {
		return &domain.FieldViolation{
			Field:   domain.FieldSpeakers,
			Kind:    domain.KindFirstSpeakerBlank,
			Message: "the first speaker must not be blank",
		}
	}
	seen := make(map[string]struct{}, len(speakers))
	nonBlank := 0
	for _, s := range speakers {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		nonBlank++
		seen[strings.ToLower(s)] = struct{}{}
	}
	if len(seen) < nonBlank {
		return &domain.FieldViolation{
			Field:   domain.FieldSpeakers,
			Kind:    domain.KindDuplicateSpeakers,
			Message: "speakers must be distinct",
		}
	}
	return nil
}
