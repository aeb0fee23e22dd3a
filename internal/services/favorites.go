package services

import (
	"context"
	"fmt"
	"sort"

	"eventplanner/internal/domain"
)

// DefaultMaxFavorites is the favorite limit used when none is configured.
const DefaultMaxFavorites = 1

type favoritesManager struct {
	favoriteRepo domain.FavoriteRepository
	limit        int
	locks        *userLocks
}

// NewFavoritesManager returns a FavoritesManager allowing at most limit favorites per user.
// A limit below 1 falls back to DefaultMaxFavorites.
func NewFavoritesManager(favoriteRepo domain.FavoriteRepository, limit int) domain.FavoritesManager {
	if limit < 1 {
		limit = DefaultMaxFavorites
	}
	return &favoritesManager{
		favoriteRepo: favoriteRepo,
		limit:        limit,
		locks:        newUserLocks(),
	}
}

func (m *favoritesManager) Limit() int {
	return m.limit
}

func (m *favoritesManager) IsAtLimit(ctx context.Context, user *domain.User) (bool, error) {
	n, err := m.favoriteRepo.CountByUserID(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("count favorites: %w", err)
	}
	return n >= m.limit, nil
}

func (m *favoritesManager) IsFavorite(ctx context.Context, user *domain.User, event *domain.Event) (bool, error) {
	ok, err := m.favoriteRepo.Exists(ctx, user.ID, event.ID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return ok, nil
}

// TryAdd serializes callers per user in-process; the repository insert is itself
// conditional on the limit so concurrent processes sharing storage cannot overshoot it.
func (m *favoritesManager) TryAdd(ctx context.Context, user *domain.User, event *domain.Event) (bool, error) {
	unlock := m.locks.lock(user.ID)
	defer unlock()

	atLimit, err := m.IsAtLimit(ctx, user)
	if err != nil {
		return false, err
	}
	if atLimit {
		return false, nil
	}
	fav, err := m.IsFavorite(ctx, user, event)
	if err != nil {
		return false, err
	}
	if fav {
		return false, nil
	}
	added, err := m.favoriteRepo.AddIfBelowLimit(ctx, user.ID, event.ID, m.limit)
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return added, nil
}

func (m *favoritesManager) List(ctx context.Context, user *domain.User) ([]*domain.Event, error) {
	events, err := m.favoriteRepo.ListEventsByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if events == nil {
		return []*domain.Event{}, nil
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.ScheduledAt.Equal(b.ScheduledAt) {
			return a.ScheduledAt.Before(b.ScheduledAt)
		}
		return a.Name < b.Name
	})
	return events, nil
}
