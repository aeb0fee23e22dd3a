// Package seed loads initial rooms, users and events from YAML.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"eventplanner/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultData []byte

// Data is the content of a seed file.
type Data struct {
	Rooms  []Room  `yaml:"rooms"`
	Users  []User  `yaml:"users"`
	Events []Event `yaml:"events"`
}

type Room struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

type User struct {
	Username string      `yaml:"username"`
	Password string      `yaml:"password"`
	Role     domain.Role `yaml:"role"`
}

type Event struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Speakers    []string `yaml:"speakers"`
	// ScheduledAt is RFC 3339.
	ScheduledAt string `yaml:"scheduled_at"`
	Room        string `yaml:"room"`
	BeamerCode  int    `yaml:"beamer_code"`
	PriceCents  int64  `yaml:"price_cents"`
}

// Load reads the seed file at path, or the embedded default when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(defaultData)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b)
}

// Parse decodes seed YAML and checks roles and timestamps.
func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for _, u := range d.Users {
		if !u.Role.Valid() {
			return nil, fmt.Errorf("user %q: unknown role %q", u.Username, u.Role)
		}
	}
	for _, e := range d.Events {
		if _, err := time.Parse(time.RFC3339, e.ScheduledAt); err != nil {
			return nil, fmt.Errorf("event %q: %w", e.Name, err)
		}
	}
	return &d, nil
}

// Seeder writes seed data through the repositories. Records that already exist are skipped,
// so running it on every start is safe.
type Seeder struct {
	rooms  domain.RoomRepository
	users  domain.UserRepository
	events domain.EventRepository
	hasher domain.PasswordHasher
	logger *slog.Logger
}

func NewSeeder(rooms domain.RoomRepository, users domain.UserRepository, events domain.EventRepository, hasher domain.PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{rooms: rooms, users: users, events: events, hasher: hasher, logger: logger}
}

// Run seeds d. Events bypass the future-date rule so fixtures may lie in the past.
func (s *Seeder) Run(ctx context.Context, d *Data) error {
	roomIDs := make(map[string]string, len(d.Rooms))
	for _, r := range d.Rooms {
		id, err := s.seedRoom(ctx, r)
		if err != nil {
			return err
		}
		roomIDs[strings.ToLower(r.Name)] = id
	}
	for _, u := range d.Users {
		if err := s.seedUser(ctx, u); err != nil {
			return err
		}
	}
	for _, e := range d.Events {
		if err := s.seedEvent(ctx, e, roomIDs); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedRoom(ctx context.Context, r Room) (string, error) {
	existing, err := s.rooms.GetByName(ctx, r.Name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get room %s: %w", r.Name, err)
	}
	now := time.Now()
	room := domain.NewRoom(r.Name, r.Capacity, now, now)
	if err := s.rooms.Create(ctx, room); err != nil {
		return "", fmt.Errorf("create room %s: %w", r.Name, err)
	}
	s.logger.InfoContext(ctx, "seeded room", "name", room.Name, "id", room.ID)
	return room.ID, nil
}

func (s *Seeder) seedUser(ctx context.Context, u User) error {
	_, err := s.users.GetByUsername(ctx, u.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("get user %s: %w", u.Username, err)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(salt, u.Password)
	if err != nil {
		return err
	}
	now := time.Now()
	user := domain.NewUser(u.Username, hash, salt, u.Role, now, now)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil
		}
		return fmt.Errorf("create user %s: %w", u.Username, err)
	}
	s.logger.InfoContext(ctx, "seeded user", "username", user.Username, "role", user.Role)
	return nil
}

func (s *Seeder) seedEvent(ctx context.Context, e Event, roomIDs map[string]string) error {
	roomID, ok := roomIDs[strings.ToLower(e.Room)]
	if !ok {
		room, err := s.rooms.GetByName(ctx, e.Room)
		if err != nil {
			return fmt.Errorf("event %q room %s: %w", e.Name, e.Room, err)
		}
		roomID = room.ID
	}
	at, err := time.Parse(time.RFC3339, e.ScheduledAt)
	if err != nil {
		return fmt.Errorf("event %q: %w", e.Name, err)
	}
	now := time.Now()
	event := &domain.Event{
		Name:        e.Name,
		Description: e.Description,
		Speakers:    e.Speakers,
		ScheduledAt: at.UTC(),
		RoomID:      roomID,
		BeamerCode:  e.BeamerCode,
		BeamerCheck: domain.BeamerCheckFor(e.BeamerCode),
		PriceCents:  e.PriceCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.events.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) || errors.Is(err, domain.ErrNameDayTaken) {
			return nil
		}
		return fmt.Errorf("create event %q: %w", e.Name, err)
	}
	s.logger.InfoContext(ctx, "seeded event", "name", event.Name, "id", event.ID)
	return nil
}
