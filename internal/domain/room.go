package domain

import (
	"context"
	"time"
)

// Room represents a physical room (lokaal) that events are scheduled in.
// swagger:model Room
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRoom returns a new Room with the given fields. ID is typically set by the repository on create.
func NewRoom(name string, capacity int, createdAt, updatedAt time.Time) *Room {
	return &Room{
		Name:      name,
		Capacity:  capacity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RoomRepository defines the interface for room storage.
// Create returns ErrDuplicateName when a room with the same name (case-insensitive) exists.
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	GetByName(ctx context.Context, name string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
}

// RoomService defines the business logic for rooms.
type RoomService interface {
	CreateRoom(ctx context.Context, room *Room) ([]FieldViolation, error)
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	GetCapacity(ctx context.Context, id string) (int, error)
}
