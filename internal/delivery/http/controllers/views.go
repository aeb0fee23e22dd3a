package controllers

import (
	"log/slog"
	"net/http"
	"regexp"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// EventView is an event plus its day and time-of-day projections.
// swagger:model EventView
type EventView struct {
	*domain.Event
	Day       string `json:"day"`
	TimeOfDay string `json:"time_of_day"`
}

func newEventView(e *domain.Event) EventView {
	return EventView{Event: e, Day: e.Day().Format(dateLayout), TimeOfDay: e.TimeOfDay()}
}

func newEventViews(events []*domain.Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, newEventView(e))
	}
	return out
}

// uuidRegex matches the ids the store hands out. Path ids that don't match can't name a row.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// dateLayout is the format of the date query parameter and of EventView.Day.
const dateLayout = "2006-01-02"

func writeInternalError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	reqID, _ := middleware.RequestIDFromContext(r.Context())
	logger.ErrorContext(r.Context(), "request failed", "request_id", reqID, "path", r.URL.Path, "method", r.Method, "err", err)
	h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
}
