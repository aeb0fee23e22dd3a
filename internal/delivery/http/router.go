package http

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth      *controllers.AuthController
	Events    *controllers.EventController
	Rooms     *controllers.RoomController
	Favorites *controllers.FavoriteController
}

// NewRouter initializes the HTTP router with all application routes.
// Role checks run in middleware before any handler is invoked.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	optional := middleware.OptionalAuth(verifier, logger)
	authed := middleware.RequireAuth(verifier, logger)
	withRole := func(role domain.Role, next http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(role, logger)(next))
	}

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/me", authed(c.Auth.Me))

	// Events
	mux.HandleFunc("GET /events", optional(c.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", optional(c.Events.GetEvent))
	mux.HandleFunc("POST /events", withRole(domain.RoleAdmin, c.Events.CreateEvent))
	mux.HandleFunc("PUT /events/{eventID}", withRole(domain.RoleAdmin, c.Events.UpdateEvent))

	// Favorites
	mux.HandleFunc("POST /events/{eventID}/favorite", withRole(domain.RoleUser, c.Favorites.AddFavorite))
	mux.HandleFunc("GET /favorites", withRole(domain.RoleUser, c.Favorites.ListFavorites))
	mux.HandleFunc("GET /favorites.ics", withRole(domain.RoleUser, c.Favorites.ExportFavorites))

	// Rooms
	mux.HandleFunc("GET /rooms", c.Rooms.ListRooms)
	mux.HandleFunc("POST /rooms", withRole(domain.RoleAdmin, c.Rooms.CreateRoom))
	mux.HandleFunc("GET /rooms/{roomID}", c.Rooms.GetRoom)
	mux.HandleFunc("GET /rooms/{roomID}/capacity", c.Rooms.GetCapacity)

	mux.HandleFunc("GET /health", Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
