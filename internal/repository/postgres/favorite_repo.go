package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventplanner/internal/domain"
)

type favoriteRepository struct {
	DB *sql.DB
}

func NewFavoriteRepository(db *sql.DB) domain.FavoriteRepository {
	return &favoriteRepository{DB: db}
}

// AddIfBelowLimit locks the user row so concurrent adds for the same user run one at a time,
// then counts and inserts inside the same transaction.
func (r *favoriteRepository) AddIfBelowLimit(ctx context.Context, userID, eventID string, limit int) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || malformedID(err) {
			return false, domain.ErrUserNotFound
		}
		return false, fmt.Errorf("lock user: %w", err)
	}

	var count int
	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT count(*), coalesce(bool_or(event_id = $2), false)
		FROM user_favorites
		WHERE user_id = $1
	`, userID, eventID).Scan(&count, &exists)
	if err != nil {
		return false, fmt.Errorf("count favorites: %w", err)
	}
	if exists || count >= limit {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO user_favorites (user_id, event_id) VALUES ($1, $2)`, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("insert favorite: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_favorites WHERE user_id = $1 AND event_id = $2)`,
		userID, eventID,
	).Scan(&exists)
	return exists, err
}

func (r *favoriteRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM user_favorites WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *favoriteRepository) ListEventsByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.name, e.description, e.speakers, e.scheduled_at, e.room_id,
			e.beamer_code, e.beamer_check, e.price_cents, e.created_at, e.updated_at
		FROM events e
		JOIN user_favorites f ON f.event_id = e.id
		WHERE f.user_id = $1
		ORDER BY e.scheduled_at, e.name
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
