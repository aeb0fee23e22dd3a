package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// CreateRoomRequest is the request body for POST /rooms.
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// Validate implements Validator. Format and range rules are reported by the service as violations.
func (c CreateRoomRequest) Validate() []string {
	if strings.TrimSpace(c.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// RoomCapacityResponse is the data of GET /rooms/{roomID}/capacity.
type RoomCapacityResponse struct {
	RoomID   string `json:"room_id"`
	Capacity int    `json:"capacity"`
}

// GetRoomResponse is the data of GET /rooms/{roomID}.
type GetRoomResponse struct {
	Room   *domain.Room `json:"room"`
	Events []EventView  `json:"events"`
}

type RoomController struct {
	Logger  *slog.Logger
	Service domain.RoomService
	Events  domain.EventService
}

func NewRoomController(logger *slog.Logger, svc domain.RoomService, events domain.EventService) *RoomController {
	return &RoomController{
		Logger:  logger,
		Service: svc,
		Events:  events,
	}
}

// ListRooms godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains rooms"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [get]
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Service.ListRooms(r.Context())
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, rooms)
}

// CreateRoom godoc
// @Summary Create a room
// @Description Name is one letter and three digits, unique ignoring case. Capacity is 1 to 50.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room body CreateRoomRequest true "Room data"
// @Success 201 {object} helpers.APIResponse "data contains the created room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	room := &domain.Room{Name: req.Name, Capacity: req.Capacity}
	violations, err := c.Service.CreateRoom(r.Context(), room)
	if err != nil {
		writeInternalError(c.Logger, w, r, err)
		return
	}
	if len(violations) > 0 {
		h.WriteJSONViolations(w, violations)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, room)
}

// GetRoom godoc
// @Summary Get a room and its events
// @Tags rooms
// @Produce json
// @Param roomID path string true "Room ID"
// @Success 200 {object} helpers.APIResponse "data contains room and events"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{roomID} [get]
func (c *RoomController) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	if !uuidRegex.MatchString(roomID) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "room not found")
		return
	}
	room, err := c.Service.GetRoom(r.Context(), roomID)
	if err != nil {
		c.writeRoomError(w, r, err)
		return
	}
	events, err := c.Events.ListEventsInRoom(r.Context(), roomID)
	if err != nil {
		c.writeRoomError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, GetRoomResponse{Room: room, Events: newEventViews(events)})
}

// GetCapacity godoc
// @Summary Get a room's capacity
// @Tags rooms
// @Produce json
// @Param roomID path string true "Room ID"
// @Success 200 {object} helpers.APIResponse "data contains room_id and capacity"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{roomID}/capacity [get]
func (c *RoomController) GetCapacity(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	if !uuidRegex.MatchString(roomID) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "room not found")
		return
	}
	capacity, err := c.Service.GetCapacity(r.Context(), roomID)
	if err != nil {
		c.writeRoomError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, RoomCapacityResponse{RoomID: roomID, Capacity: capacity})
}

func (c *RoomController) writeRoomError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "room not found")
		return
	}
	writeInternalError(c.Logger, w, r, err)
}
