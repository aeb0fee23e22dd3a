package memory

import (
	"context"
	"sort"
	"time"

	"eventplanner/internal/domain"
)

type eventRepository struct {
	s *Store
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(e, ""); err != nil {
		return err
	}
	e.ID = newID()
	r.s.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.conflict(e, e.ID); err != nil {
		return err
	}
	r.s.events[e.ID] = cloneEvent(e)
	return nil
}

// conflict enforces the slot and name/day uniqueness constraints. Caller holds the write lock.
func (r *eventRepository) conflict(e *domain.Event, selfID string) error {
	for id, other := range r.s.events {
		if id == selfID {
			continue
		}
		if other.RoomID == e.RoomID && other.ScheduledAt.Equal(e.ScheduledAt) {
			return domain.ErrSlotTaken
		}
		if equalFold(other.Name, e.Name) && sameDay(other.ScheduledAt, e.ScheduledAt) {
			return domain.ErrNameDayTaken
		}
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *eventRepository) FindByRoomAndDateTime(ctx context.Context, roomID string, at time.Time) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.events {
		if e.RoomID == roomID && e.ScheduledAt.Equal(at) {
			return cloneEvent(e), nil
		}
	}
	return nil, nil
}

func (r *eventRepository) FindByNameAndDay(ctx context.Context, name string, day time.Time) ([]*domain.Event, error) {
	start, end := domain.DayBounds(day)
	return r.filter(func(e *domain.Event) bool {
		return equalFold(e.Name, name) && !e.ScheduledAt.Before(start) && e.ScheduledAt.Before(end)
	}), nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return r.filter(func(*domain.Event) bool { return true }), nil
}

func (r *eventRepository) ListByDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	start, end := domain.DayBounds(day)
	return r.filter(func(e *domain.Event) bool {
		return !e.ScheduledAt.Before(start) && e.ScheduledAt.Before(end)
	}), nil
}

func (r *eventRepository) ListByRoomID(ctx context.Context, roomID string) ([]*domain.Event, error) {
	return r.filter(func(e *domain.Event) bool { return e.RoomID == roomID }), nil
}

// filter returns clones of the matching events ordered by date-time, then name.
func (r *eventRepository) filter(keep func(*domain.Event) bool) []*domain.Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Event, 0)
	for _, e := range r.s.events {
		if keep(e) {
			out = append(out, cloneEvent(e))
		}
	}
	sortEvents(out)
	return out
}

func sortEvents(events []*domain.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].ScheduledAt.Equal(events[j].ScheduledAt) {
			return events[i].ScheduledAt.Before(events[j].ScheduledAt)
		}
		return events[i].Name < events[j].Name
	})
}
