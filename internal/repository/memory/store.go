// Package memory implements the repository ports in process memory. It enforces the
// same uniqueness constraints as the Postgres schema and is safe for concurrent use.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventplanner/internal/domain"
)

// Store holds all records. Obtain the repositories with the accessor methods.
type Store struct {
	mu        sync.RWMutex
	events    map[string]*domain.Event
	rooms     map[string]*domain.Room
	users     map[string]*domain.User
	favorites map[string]map[string]time.Time // userID -> eventID -> added at
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		events:    make(map[string]*domain.Event),
		rooms:     make(map[string]*domain.Room),
		users:     make(map[string]*domain.User),
		favorites: make(map[string]map[string]time.Time),
	}
}

// Events returns the store's EventRepository.
func (s *Store) Events() domain.EventRepository { return &eventRepository{s: s} }

// Rooms returns the store's RoomRepository.
func (s *Store) Rooms() domain.RoomRepository { return &roomRepository{s: s} }

// Users returns the store's UserRepository.
func (s *Store) Users() domain.UserRepository { return &userRepository{s: s} }

// Favorites returns the store's FavoriteRepository.
func (s *Store) Favorites() domain.FavoriteRepository { return &favoriteRepository{s: s} }

func newID() string {
	return uuid.NewString()
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	c.Speakers = append([]string(nil), e.Speakers...)
	return &c
}

func sameDay(a, b time.Time) bool {
	da, _ := domain.DayBounds(a)
	db, _ := domain.DayBounds(b)
	return da.Equal(db)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
