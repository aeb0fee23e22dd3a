package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventplanner/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	roomRepo       domain.RoomRepository
	validator      *EventValidator
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEventService creates an EventService. The validator's clock is also used for timestamps.
func NewEventService(eventRepo domain.EventRepository,
	roomRepo domain.RoomRepository,
	validator *EventValidator,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		roomRepo:       roomRepo,
		validator:      validator,
		now:            validator.now,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	start, end := params.Window(len(events))
	return events[start:end], len(events), nil
}

func (s *eventService) ListEventsOnDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list events by day: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListEventsInRoom(ctx context.Context, roomID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	events, err := s.eventRepo.ListByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list events by room: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) CreateEvent(ctx context.Context, draft *domain.EventDraft) (*domain.Event, []domain.FieldViolation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	d := *draft
	d.ID = ""
	if vs, err := s.check(ctx, &d); err != nil || len(vs) > 0 {
		return nil, vs, err
	}

	now := s.now()
	event := &domain.Event{CreatedAt: now, UpdatedAt: now}
	d.ApplyTo(event)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if vs := storageViolations(err); vs != nil {
			return nil, vs, nil
		}
		return nil, nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, draft *domain.EventDraft) (*domain.Event, []domain.FieldViolation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}

	d := *draft
	d.ID = existing.ID
	if vs, err := s.check(ctx, &d); err != nil || len(vs) > 0 {
		return nil, vs, err
	}

	updated := *existing
	d.ApplyTo(&updated)
	updated.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		if vs := storageViolations(err); vs != nil {
			return nil, vs, nil
		}
		return nil, nil, fmt.Errorf("update event: %w", err)
	}
	return &updated, nil, nil
}

// check runs the field constraints and the business rules, then makes sure the room exists.
func (s *eventService) check(ctx context.Context, draft *domain.EventDraft) ([]domain.FieldViolation, error) {
	vs := checkEventFields(draft)
	rules, err := s.validator.Validate(ctx, draft, s.eventRepo)
	if err != nil {
		return nil, err
	}
	vs = append(vs, rules...)
	if len(vs) > 0 {
		return vs, nil
	}
	if _, err := s.roomRepo.GetByID(ctx, *draft.RoomID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("room %s: %w", *draft.RoomID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return nil, nil
}

// storageViolations maps uniqueness errors raised by the storage layer back to the
// violations the validator would have reported had it seen the competing write.
func storageViolations(err error) []domain.FieldViolation {
	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		return []domain.FieldViolation{{
			Field:   domain.FieldScheduledAt,
			Kind:    domain.KindSlotConflict,
			Message: "another event is already scheduled in this room at this time",
		}}
	case errors.Is(err, domain.ErrNameDayTaken):
		return []domain.FieldViolation{{
			Field:   domain.FieldName,
			Kind:    domain.KindNameDayConflict,
			Message: "an event with this name already exists on this day",
		}}
	}
	return nil
}
