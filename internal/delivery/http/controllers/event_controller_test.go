package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2027, 6, 10, 0, 0, 0, 0, time.UTC)

func TestEventController_ListEvents(t *testing.T) {
	hs := newHarness(t, 1)
	late := hs.createEvent(t, "Late", hs.roomA, day.Add(16*time.Hour))
	hs.createEvent(t, "Early", hs.roomA, day.Add(9*time.Hour))
	hs.createEvent(t, "Tomorrow", hs.roomB, day.AddDate(0, 0, 1).Add(9*time.Hour))
	ctrl := hs.eventController()

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events?page_size=2", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp ListEventsResponse
		require.Nil(t, decode(t, rr, &resp))
		require.Len(t, resp.Events, 2)
		assert.Equal(t, "Early", resp.Events[0].Name)
		assert.Equal(t, "09:00", resp.Events[0].TimeOfDay)
		assert.Equal(t, "2027-06-10", resp.Events[0].Day)
		require.NotNil(t, resp.Pagination)
		assert.Equal(t, 3, resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.TotalPages)
		assert.Nil(t, resp.FavoriteIDs)
		assert.Nil(t, resp.LimitReached)
	})

	t.Run("authenticated user sees favorites", func(t *testing.T) {
		added, err := hs.favorites.TryAdd(t.Context(), hs.user, late)
		require.NoError(t, err)
		require.True(t, added)

		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, asUser(httptest.NewRequest(http.MethodGet, "/events", nil), hs.user))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp ListEventsResponse
		require.Nil(t, decode(t, rr, &resp))
		assert.Equal(t, []string{late.ID}, resp.FavoriteIDs)
		require.NotNil(t, resp.LimitReached)
		assert.True(t, *resp.LimitReached)
	})

	t.Run("date filter", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events?date=2027-06-10", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp ListEventsResponse
		require.Nil(t, decode(t, rr, &resp))
		require.Len(t, resp.Events, 2)
		assert.Equal(t, "Early", resp.Events[0].Name)
		assert.Equal(t, "Late", resp.Events[1].Name)
		assert.Nil(t, resp.Pagination)
	})

	t.Run("bad page", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events?page=0", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events?date=10/06/2027", nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		apiErr := decode(t, rr, nil)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeBadRequest, apiErr.Code)
	})
}

func TestEventController_GetEvent(t *testing.T) {
	hs := newHarness(t, 1)
	e := hs.createEvent(t, "Intro", hs.roomA, day.Add(10*time.Hour))
	ctrl := hs.eventController()

	tests := []struct {
		name         string
		eventID      string
		user         *domain.User
		wantStatus   int
		wantFavorite *bool
	}{
		{name: "anonymous", eventID: e.ID, wantStatus: http.StatusOK},
		{name: "with user", eventID: e.ID, user: hs.user, wantStatus: http.StatusOK, wantFavorite: new(bool)},
		{name: "not found", eventID: uuid.NewString(), wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/events/"+tt.eventID, nil)
			req.SetPathValue("eventID", tt.eventID)
			if tt.user != nil {
				req = asUser(req, tt.user)
			}
			rr := httptest.NewRecorder()
			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				apiErr := decode(t, rr, nil)
				require.NotNil(t, apiErr)
				assert.Equal(t, helpers.ErrCodeNotFound, apiErr.Code)
				return
			}
			var resp GetEventResponse
			require.Nil(t, decode(t, rr, &resp))
			assert.Equal(t, e.ID, resp.Event.ID)
			assert.Equal(t, tt.wantFavorite, resp.IsFavorite)
		})
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	hs := newHarness(t, 1)
	hs.createEvent(t, "Keynote", hs.roomA, day.Add(10*time.Hour))
	ctrl := hs.eventController()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantKinds  []domain.ViolationKind
	}{
		{
			name:       "created",
			body:       fmt.Sprintf(`{"name":"Intro","speakers":["Alice"],"scheduled_at":"2027-06-10T12:00:00+02:00","room_id":%q,"beamer_code":1234,"price_cents":1500}`, hs.roomB.ID),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "slot conflict",
			body:       fmt.Sprintf(`{"name":"Other","speakers":["Bob"],"scheduled_at":"2027-06-10T10:00:00Z","room_id":%q}`, hs.roomA.ID),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   helpers.ErrCodeValidationFailed,
			wantKinds:  []domain.ViolationKind{domain.KindSlotConflict},
		},
		{
			name:       "every rule at once",
			body:       fmt.Sprintf(`{"name":" ","speakers":[],"scheduled_at":"2020-01-01T10:00:00Z","room_id":%q}`, hs.roomB.ID),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   helpers.ErrCodeValidationFailed,
			wantKinds:  []domain.ViolationKind{domain.KindPastDateTime, domain.KindBlankName, domain.KindNoSpeakers},
		},
		{
			name:       "unknown room",
			body:       `{"name":"Intro 2","speakers":["Alice"],"scheduled_at":"2027-06-11T10:00:00Z","room_id":"nope"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "unknown field",
			body:       `{"title":"Intro"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			ctrl.CreateEvent(rr, asUser(jsonRequest(http.MethodPost, "/events", tt.body), hs.admin))

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusCreated {
				var view EventView
				require.Nil(t, decode(t, rr, &view))
				assert.NotEmpty(t, view.ID)
				assert.Equal(t, "10:00", view.TimeOfDay, "stored in UTC")
				assert.Equal(t, 70, view.BeamerCheck)
				return
			}
			apiErr := decode(t, rr, nil)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantKinds != nil {
				got := make([]domain.ViolationKind, 0, len(apiErr.Details))
				for _, d := range apiErr.Details {
					got = append(got, d.Kind)
				}
				assert.Equal(t, tt.wantKinds, got)
			}
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	hs := newHarness(t, 1)
	e := hs.createEvent(t, "Intro", hs.roomA, day.Add(10*time.Hour))
	ctrl := hs.eventController()

	body := fmt.Sprintf(`{"name":"Intro","speakers":["Alice","Bob"],"scheduled_at":"2027-06-10T10:00:00Z","room_id":%q}`, hs.roomB.ID)

	req := asUser(jsonRequest(http.MethodPut, "/events/"+e.ID, body), hs.admin)
	req.SetPathValue("eventID", e.ID)
	rr := httptest.NewRecorder()
	ctrl.UpdateEvent(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var view EventView
	require.Nil(t, decode(t, rr, &view))
	assert.Equal(t, e.ID, view.ID)
	assert.Equal(t, hs.roomB.ID, view.RoomID)
	assert.Equal(t, []string{"Alice", "Bob"}, view.Speakers)

	missing := uuid.NewString()
	req = asUser(jsonRequest(http.MethodPut, "/events/"+missing, body), hs.admin)
	req.SetPathValue("eventID", missing)
	rr = httptest.NewRecorder()
	ctrl.UpdateEvent(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
