package memory

import (
	"context"
	"sort"

	"eventplanner/internal/domain"
)

type roomRepository struct {
	s *Store
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.rooms {
		if equalFold(other.Name, room.Name) {
			return domain.ErrDuplicateName
		}
	}
	room.ID = newID()
	c := *room
	r.s.rooms[room.ID] = &c
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *room
	return &c, nil
}

func (r *roomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, room := range r.s.rooms {
		if equalFold(room.Name, name) {
			c := *room
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		c := *room
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
