package domain

import "context"

// FavoriteRepository stores user-event favorite links.
type FavoriteRepository interface {
	// AddIfBelowLimit atomically inserts the link when the user holds fewer than limit
	// favorites and does not already favor the event. added is false when nothing was inserted.
	AddIfBelowLimit(ctx context.Context, userID, eventID string, limit int) (added bool, err error)
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
	ListEventsByUserID(ctx context.Context, userID string) ([]*Event, error)
}

// FavoritesManager enforces the per-user favorite capacity.
type FavoritesManager interface {
	// TryAdd returns false without mutating anything when the user is at the limit or
	// already favors the event. Both causes are reported the same way.
	TryAdd(ctx context.Context, user *User, event *Event) (bool, error)
	IsAtLimit(ctx context.Context, user *User) (bool, error)
	IsFavorite(ctx context.Context, user *User, event *Event) (bool, error)
	// List returns the favorites sorted by scheduled date-time, then name.
	List(ctx context.Context, user *User) ([]*Event, error)
	Limit() int
}
