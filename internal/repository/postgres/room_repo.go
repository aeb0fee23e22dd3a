package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventplanner/internal/domain"
)

type roomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{DB: db}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (name, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, room.Name, room.Capacity, room.CreatedAt, room.UpdatedAt).Scan(&room.ID)
	if c, ok := uniqueConstraint(err); ok && c == constraintRoomName {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `SELECT id, name, capacity, created_at, updated_at FROM rooms WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *roomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	query := `SELECT id, name, capacity, created_at, updated_at FROM rooms WHERE lower(name) = lower($1)`
	return r.get(ctx, query, name)
}

func (r *roomRepository) get(ctx context.Context, query string, arg string) (*domain.Room, error) {
	room := &domain.Room{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&room.ID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || malformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	query := `SELECT id, name, capacity, created_at, updated_at FROM rooms ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
