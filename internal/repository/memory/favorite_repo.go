package memory

import (
	"context"
	"time"

	"eventplanner/internal/domain"
)

type favoriteRepository struct {
	s *Store
}

func (r *favoriteRepository) AddIfBelowLimit(ctx context.Context, userID, eventID string, limit int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return false, domain.ErrUserNotFound
	}
	if _, ok := r.s.events[eventID]; !ok {
		return false, domain.ErrNotFound
	}
	favs := r.s.favorites[userID]
	if _, dup := favs[eventID]; dup || len(favs) >= limit {
		return false, nil
	}
	if favs == nil {
		favs = make(map[string]time.Time)
		r.s.favorites[userID] = favs
	}
	favs[eventID] = time.Now()
	return true, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.favorites[userID][eventID]
	return ok, nil
}

func (r *favoriteRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.favorites[userID]), nil
}

func (r *favoriteRepository) ListEventsByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.s.favorites[userID]))
	for eventID := range r.s.favorites[userID] {
		if e, ok := r.s.events[eventID]; ok {
			out = append(out, cloneEvent(e))
		}
	}
	return out, nil
}
