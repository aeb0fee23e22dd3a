package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventplanner/internal/domain"

	"github.com/lib/pq"
)

const eventColumns = `id, name, description, speakers, scheduled_at, room_id, beamer_code, beamer_check, price_cents, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var speakers pq.StringArray
	var code, check, price sql.NullInt64
	err := row.Scan(&e.ID, &e.Name, &e.Description, &speakers, &e.ScheduledAt, &e.RoomID,
		&code, &check, &price, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Speakers = []string(speakers)
	e.BeamerCode = int(code.Int64)
	e.BeamerCheck = int(check.Int64)
	e.PriceCents = price.Int64
	return e, nil
}

// beamerCheck is NULL exactly when the beamer code is absent; 0 is a valid check value.
func beamerCheck(e *domain.Event) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(e.BeamerCheck), Valid: e.BeamerCode != 0}
}

// mapWriteError translates unique violations on the events table.
func mapWriteError(err error) error {
	if c, ok := uniqueConstraint(err); ok {
		switch c {
		case constraintEventRoomSlot:
			return domain.ErrSlotTaken
		case constraintEventNameDay:
			return domain.ErrNameDayTaken
		}
	}
	return err
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, speakers, scheduled_at, room_id, beamer_code, beamer_check, price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, pq.Array(e.Speakers), e.ScheduledAt, e.RoomID,
		nullInt(e.BeamerCode), beamerCheck(e), e.PriceCents, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	return mapWriteError(err)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, speakers = $3, scheduled_at = $4, room_id = $5,
			beamer_code = $6, beamer_check = $7, price_cents = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Description, pq.Array(e.Speakers), e.ScheduledAt, e.RoomID,
		nullInt(e.BeamerCode), beamerCheck(e), e.PriceCents, e.UpdatedAt, e.ID,
	)
	if err != nil {
		if malformedID(err) {
			return domain.ErrNotFound
		}
		return mapWriteError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || malformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) FindByRoomAndDateTime(ctx context.Context, roomID string, at time.Time) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE room_id = $1 AND scheduled_at = $2`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, roomID, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || malformedID(err) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) FindByNameAndDay(ctx context.Context, name string, day time.Time) ([]*domain.Event, error) {
	start, end := domain.DayBounds(day)
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE lower(name) = lower($1) AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at, name
	`
	return r.list(ctx, query, name, start, end)
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY scheduled_at, name`
	return r.list(ctx, query)
}

func (r *eventRepository) ListByDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	start, end := domain.DayBounds(day)
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE scheduled_at >= $1 AND scheduled_at < $2
		ORDER BY scheduled_at, name
	`
	return r.list(ctx, query, start, end)
}

func (r *eventRepository) ListByRoomID(ctx context.Context, roomID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE room_id = $1 ORDER BY scheduled_at, name`
	events, err := r.list(ctx, query, roomID)
	if malformedID(err) {
		return []*domain.Event{}, nil
	}
	return events, err
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
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
