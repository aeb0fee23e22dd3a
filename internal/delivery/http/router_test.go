package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventplanner/internal/adapters/auth"
	"eventplanner/internal/adapters/calendar"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/domain"
	"eventplanner/internal/repository/memory"
	"eventplanner/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, map[domain.Role]string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	jwt := auth.NewJWT("test-secret")

	tokens := make(map[domain.Role]string)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleUser} {
		u := domain.NewUser(strings.ToLower(string(role)), "h", "s", role, time.Now(), time.Now())
		require.NoError(t, store.Users().Create(t.Context(), u))
		tok, err := jwt.Issue(u.ID, u.Username, role, time.Hour)
		require.NoError(t, err)
		tokens[role] = tok
	}

	eventSvc := services.NewEventService(store.Events(), store.Rooms(), services.NewEventValidator(nil), time.Second)
	roomSvc := services.NewRoomService(store.Rooms(), time.Second)
	favorites := services.NewFavoritesManager(store.Favorites(), 1)
	authSvc := services.NewAuthService(store.Users(), auth.NewBcryptHasher(0), jwt, time.Hour)

	mux := NewRouter(Controllers{
		Auth:      controllers.NewAuthController(logger, authSvc),
		Events:    controllers.NewEventController(logger, eventSvc, favorites, authSvc),
		Rooms:     controllers.NewRoomController(logger, roomSvc, eventSvc),
		Favorites: controllers.NewFavoriteController(logger, favorites, eventSvc, roomSvc, authSvc, calendar.NewExporter(0)),
	}, jwt, logger)
	return mux, tokens
}

func TestRouter_RoleGating(t *testing.T) {
	mux, tokens := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		role       domain.Role
		body       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "me without token", method: http.MethodGet, path: "/auth/me", wantStatus: http.StatusUnauthorized},
		{name: "me as admin", method: http.MethodGet, path: "/auth/me", role: domain.RoleAdmin, wantStatus: http.StatusOK},
		{name: "anonymous event list", method: http.MethodGet, path: "/events", wantStatus: http.StatusOK},
		{name: "event list with user", method: http.MethodGet, path: "/events", role: domain.RoleUser, wantStatus: http.StatusOK},
		{name: "rooms are public", method: http.MethodGet, path: "/rooms", wantStatus: http.StatusOK},
		{name: "create event without token", method: http.MethodPost, path: "/events", body: `{}`, wantStatus: http.StatusUnauthorized},
		{name: "create event as user", method: http.MethodPost, path: "/events", role: domain.RoleUser, body: `{}`, wantStatus: http.StatusForbidden},
		{name: "create event as admin reaches handler", method: http.MethodPost, path: "/events", role: domain.RoleAdmin, body: `{}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "update event as user", method: http.MethodPut, path: "/events/x", role: domain.RoleUser, body: `{}`, wantStatus: http.StatusForbidden},
		{name: "create room as user", method: http.MethodPost, path: "/rooms", role: domain.RoleUser, body: `{"name":"C303","capacity":3}`, wantStatus: http.StatusForbidden},
		{name: "favorites as admin", method: http.MethodGet, path: "/favorites", role: domain.RoleAdmin, wantStatus: http.StatusForbidden},
		{name: "favorites as user", method: http.MethodGet, path: "/favorites", role: domain.RoleUser, wantStatus: http.StatusOK},
		{name: "favorite without token", method: http.MethodPost, path: "/events/x/favorite", wantStatus: http.StatusUnauthorized},
		{name: "favorite unknown event", method: http.MethodPost, path: "/events/x/favorite", role: domain.RoleUser, wantStatus: http.StatusNotFound},
		{name: "calendar export", method: http.MethodGet, path: "/favorites.ics", role: domain.RoleUser, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.role != "" {
				req.Header.Set("Authorization", "Bearer "+tokens[tt.role])
			}
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestRouter_InvalidTokenOnPublicRoute(t *testing.T) {
	mux, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
