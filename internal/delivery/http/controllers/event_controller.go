package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// EventRequest is the request body for POST /events and PUT /events/{eventID}.
// Omitted fields are reported as violations, not defaulted.
type EventRequest struct {
	Name        *string    `json:"name"`
	Description string     `json:"description"`
	Speakers    []string   `json:"speakers"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	RoomID      *string    `json:"room_id"`
	BeamerCode  *int       `json:"beamer_code"`
	PriceCents  *int64     `json:"price_cents"`
}

func (req EventRequest) draft() *domain.EventDraft {
	d := &domain.EventDraft{
		Name:        req.Name,
		Description: req.Description,
		Speakers:    req.Speakers,
		RoomID:      req.RoomID,
		BeamerCode:  req.BeamerCode,
		PriceCents:  req.PriceCents,
	}
	if req.ScheduledAt != nil {
		// Days are UTC calendar days.
		at := req.ScheduledAt.UTC()
		d.ScheduledAt = &at
	}
	return d
}

// ListEventsResponse is the data of GET /events. Pagination is omitted for the date filter;
// favorite fields are set only for authenticated users.
type ListEventsResponse struct {
	Events       []EventView       `json:"events"`
	Pagination   *h.PaginationMeta `json:"pagination,omitempty"`
	FavoriteIDs  []string          `json:"favorite_ids,omitempty"`
	LimitReached *bool             `json:"limit_reached,omitempty"`
}

// GetEventResponse is the data of GET /events/{eventID}.
type GetEventResponse struct {
	Event        EventView `json:"event"`
	IsFavorite   *bool     `json:"is_favorite,omitempty"`
	LimitReached *bool     `json:"limit_reached,omitempty"`
}

type EventController struct {
	Logger    *slog.Logger
	Service   domain.EventService
	Favorites domain.FavoritesManager
	Users     domain.AuthService
}

func NewEventController(logger *slog.Logger, svc domain.EventService, favorites domain.FavoritesManager, users domain.AuthService) *EventController {
	return &EventController{
		Logger:    logger,
		Service:   svc,
		Favorites: favorites,
		Users:     users,
	}
}

// currentUser returns the authenticated user, or nil for anonymous requests and
// tokens whose account no longer exists.
func (c *EventController) currentUser(r *http.Request) (*domain.User, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return nil, nil
	}
	user, err := c.Users.GetUser(r.Context(), userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	return user, err
}

// ListEvents godoc
// @Summary List events
// @Description Lists all events ordered by date and time, paginated. With ?date=YYYY-MM-DD only that day's events are returned, unpaginated. Authenticated users also get their favorite ids and whether they reached the favorites limit.
// @Tags events
// @Produce json
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	if ds := r.URL.Query().Get("date"); ds != "" {
		day, err := time.ParseInLocation(dateLayout, ds, time.UTC)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		events, err := c.Service.ListEventsOnDay(r.Context(), day)
		if err != nil {
			writeInternalError(c.Logger, w, r, err)
			return
		}
		h.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Events: newEventViews(events)})
		return
	}

	params, err := h.ParsePagination(r)
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	meta := h.NewPaginationMeta(params, total)
	resp := ListEventsResponse{Events: newEventViews(events), Pagination: &meta}

	user, err := c.currentUser(r)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	if user != nil {
		favorites, err := c.Favorites.List(r.Context(), user)
		if err != nil {
			writeInternalError(c.Logger, w, r, err)
			return
		}
		ids := make([]string, 0, len(favorites))
		for _, f := range favorites {
			ids = append(ids, f.ID)
		}
		reached := len(favorites) >= c.Favorites.Limit()
		resp.FavoriteIDs = ids
		resp.LimitReached = &reached
	}
	h.WriteJSONSuccess(w, http.StatusOK, resp)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns one event. Authenticated users also get is_favorite and limit_reached.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		writeInternalError(c.Logger, w, r, err)
		return
	}
	resp := GetEventResponse{Event: newEventView(event)}

	user, err := c.currentUser(r)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	if user != nil {
		isFav, err := c.Favorites.IsFavorite(r.Context(), user, event)
		if err != nil {
			writeInternalError(c.Logger, w, r, err)
			return
		}
		atLimit, err := c.Favorites.IsAtLimit(r.Context(), user)
		if err != nil {
			writeInternalError(c.Logger, w, r, err)
			return
		}
		resp.IsFavorite = &isFav
		resp.LimitReached = &atLimit
	}
	h.WriteJSONSuccess(w, http.StatusOK, resp)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event. Rejected drafts return 422 with every violation in error.details.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (room)"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, violations, err := c.Service.CreateEvent(r.Context(), req.draft())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "room not found")
			return
		}
		writeInternalError(c.Logger, w, r, err)
		return
	}
	if len(violations) > 0 {
		h.WriteJSONViolations(w, violations)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, newEventView(event))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the event's fields. The event keeps its identity, so it never conflicts with itself.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "Event data"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		return
	}
	var req EventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, violations, err := c.Service.UpdateEvent(r.Context(), eventID, req.draft())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event or room not found")
			return
		}
		writeInternalError(c.Logger, w, r, err)
		return
	}
	if len(violations) > 0 {
		h.WriteJSONViolations(w, violations)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, newEventView(event))
}
