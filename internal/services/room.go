package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

const (
	minRoomCapacity = 1
	maxRoomCapacity = 50
)

var roomNameRegex = regexp.MustCompile(`^[A-Za-z]\d{3}$`)

type roomService struct {
	roomRepo       domain.RoomRepository
	contextTimeout time.Duration
}

// NewRoomService creates a RoomService backed by roomRepo.
func NewRoomService(roomRepo domain.RoomRepository, timeout time.Duration) domain.RoomService {
	return &roomService{roomRepo: roomRepo, contextTimeout: timeout}
}

func (s *roomService) CreateRoom(ctx context.Context, room *domain.Room) ([]domain.FieldViolation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	room.Name = strings.TrimSpace(room.Name)
	var vs []domain.FieldViolation
	if !roomNameRegex.MatchString(room.Name) {
		vs = append(vs, domain.FieldViolation{
			Field:   domain.FieldName,
			Kind:    domain.KindInvalidFormat,
			Message: "room name must be one letter followed by 3 digits",
		})
	} else {
		_, err := s.roomRepo.GetByName(ctx, room.Name)
		switch {
		case err == nil:
			vs = append(vs, duplicateRoomName())
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get room by name: %w", err)
		}
	}
	if room.Capacity < minRoomCapacity || room.Capacity > maxRoomCapacity {
		vs = append(vs, domain.FieldViolation{
			Field:   domain.FieldCapacity,
			Kind:    domain.KindOutOfRange,
			Message: "capacity must be between 1 and 50",
		})
	}
	if len(vs) > 0 {
		return vs, nil
	}

	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return []domain.FieldViolation{duplicateRoomName()}, nil
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return nil, nil
}

func duplicateRoomName() domain.FieldViolation {
	return domain.FieldViolation{
		Field:   domain.FieldName,
		Kind:    domain.KindDuplicateName,
		Message: "a room with this name already exists",
	}
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}

func (s *roomService) GetCapacity(ctx context.Context, id string) (int, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return 0, err
	}
	return room.Capacity, nil
}
