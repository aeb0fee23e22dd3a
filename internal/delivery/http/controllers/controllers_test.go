package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventplanner/internal/adapters/calendar"
	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
	"eventplanner/internal/repository/memory"
	"eventplanner/internal/services"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// envelope mirrors helpers.APIResponse with the data left raw for typed decoding.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

// harness wires real services over a memory store.
type harness struct {
	store     *memory.Store
	events    domain.EventService
	rooms     domain.RoomService
	favorites domain.FavoritesManager
	users     domain.AuthService
	admin     *domain.User
	user      *domain.User
	roomA     *domain.Room
	roomB     *domain.Room
}

func newHarness(t *testing.T, limit int) *harness {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	hs := &harness{store: store}

	hs.admin = domain.NewUser("admin", "h", "s", domain.RoleAdmin, testNow, testNow)
	hs.user = domain.NewUser("user", "h", "s", domain.RoleUser, testNow, testNow)
	require.NoError(t, store.Users().Create(ctx, hs.admin))
	require.NoError(t, store.Users().Create(ctx, hs.user))
	hs.roomA = domain.NewRoom("A101", 50, testNow, testNow)
	hs.roomB = domain.NewRoom("B202", 20, testNow, testNow)
	require.NoError(t, store.Rooms().Create(ctx, hs.roomA))
	require.NoError(t, store.Rooms().Create(ctx, hs.roomB))

	validator := services.NewEventValidator(func() time.Time { return testNow })
	hs.events = services.NewEventService(store.Events(), store.Rooms(), validator, time.Second)
	hs.rooms = services.NewRoomService(store.Rooms(), time.Second)
	hs.favorites = services.NewFavoritesManager(store.Favorites(), limit)
	hs.users = services.NewAuthService(store.Users(), nil, nil, time.Hour)
	return hs
}

func (hs *harness) eventController() *EventController {
	return NewEventController(testLogger, hs.events, hs.favorites, hs.users)
}

func (hs *harness) favoriteController() *FavoriteController {
	return NewFavoriteController(testLogger, hs.favorites, hs.events, hs.rooms, hs.users, calendar.NewExporter(time.Hour))
}

func (hs *harness) roomController() *RoomController {
	return NewRoomController(testLogger, hs.rooms, hs.events)
}

func (hs *harness) createEvent(t *testing.T, name string, room *domain.Room, at time.Time) *domain.Event {
	t.Helper()
	n, id := name, room.ID
	e, vs, err := hs.events.CreateEvent(context.Background(), &domain.EventDraft{
		Name: &n, Speakers: []string{"Alice"}, ScheduledAt: &at, RoomID: &id,
	})
	require.NoError(t, err)
	require.Empty(t, vs)
	return e
}

func asUser(req *http.Request, u *domain.User) *http.Request {
	return req.WithContext(middleware.SetPrincipal(req.Context(), u.ID, u.Role))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
