package controllers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// CalendarExporter renders events as an iCalendar document.
type CalendarExporter interface {
	Export(w io.Writer, events []*domain.Event, roomNames map[string]string) error
}

// AddFavoriteResponse is the data of POST /events/{eventID}/favorite.
type AddFavoriteResponse struct {
	EventID      string `json:"event_id"`
	LimitReached bool   `json:"limit_reached"`
}

// ListFavoritesResponse is the data of GET /favorites.
type ListFavoritesResponse struct {
	Events       []EventView `json:"events"`
	Limit        int         `json:"limit"`
	LimitReached bool        `json:"limit_reached"`
}

type FavoriteController struct {
	Logger    *slog.Logger
	Favorites domain.FavoritesManager
	Events    domain.EventService
	Rooms     domain.RoomService
	Users     domain.AuthService
	Calendar  CalendarExporter
}

func NewFavoriteController(logger *slog.Logger, favorites domain.FavoritesManager, events domain.EventService, rooms domain.RoomService, users domain.AuthService, calendar CalendarExporter) *FavoriteController {
	return &FavoriteController{
		Logger:    logger,
		Favorites: favorites,
		Events:    events,
		Rooms:     rooms,
		Users:     users,
		Calendar:  calendar,
	}
}

// user resolves the authenticated account. On failure it has written the response and returns nil.
func (c *FavoriteController) user(w http.ResponseWriter, r *http.Request) *domain.User {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return nil
	}
	user, err := c.Users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
			return nil
		}
		writeInternalError(c.Logger, w, r, err)
		return nil
	}
	return user
}

// AddFavorite godoc
// @Summary Add an event to the caller's favorites
// @Description Fails with 409 when the favorites limit is reached or the event is already a favorite. Both cases share one message.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 201 {object} helpers.APIResponse "data contains event_id and limit_reached"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: favorite_rejected"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/favorite [post]
func (c *FavoriteController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	user := c.user(w, r)
	if user == nil {
		return
	}
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		return
	}
	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		writeInternalError(c.Logger, w, r, err)
		return
	}
	added, err := c.Favorites.TryAdd(r.Context(), user, event)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	if !added {
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeFavoriteRejected, "the event could not be added to your favorites")
		return
	}
	atLimit, err := c.Favorites.IsAtLimit(r.Context(), user)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "favorite added", "user_id", user.ID, "event_id", event.ID)
	h.WriteJSONSuccess(w, http.StatusCreated, AddFavoriteResponse{EventID: event.ID, LimitReached: atLimit})
}

// ListFavorites godoc
// @Summary List the caller's favorites
// @Description Favorites sorted by date and time, then name.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains events, limit and limit_reached"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /favorites [get]
func (c *FavoriteController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user := c.user(w, r)
	if user == nil {
		return
	}
	events, err := c.Favorites.List(r.Context(), user)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	limit := c.Favorites.Limit()
	h.WriteJSONSuccess(w, http.StatusOK, ListFavoritesResponse{
		Events:       newEventViews(events),
		Limit:        limit,
		LimitReached: len(events) >= limit,
	})
}

// ExportFavorites godoc
// @Summary Export the caller's favorites as iCalendar
// @Tags favorites
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string "VCALENDAR document"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /favorites.ics [get]
func (c *FavoriteController) ExportFavorites(w http.ResponseWriter, r *http.Request) {
	user := c.user(w, r)
	if user == nil {
		return
	}
	events, err := c.Favorites.List(r.Context(), user)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	rooms, err := c.Rooms.ListRooms(r.Context())
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	names := make(map[string]string, len(rooms))
	for _, room := range rooms {
		names[room.ID] = room.Name
	}
	var buf bytes.Buffer
	if err := c.Calendar.Export(&buf, events, names); err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="favorites.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
