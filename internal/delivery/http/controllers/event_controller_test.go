package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashwith-Garlapati/dev-event/internal/delivery/http/helpers"
	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	eventsBySlug map[string]*domain.Event
	getErr       error
	list         []*domain.Event
	total        int
	listErr      error
	lastParams   domain.PaginationParams
}

func (f *fakeEventService) GetEventBySlug(_ context.Context, slug string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.eventsBySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventService) GetSimilarEvents(context.Context, string) []*domain.Event {
	return []*domain.Event{}
}

func (f *fakeEventService) ListEvents(_ context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastParams = params
	return f.list, f.total, f.listErr
}

func TestEventController_GetEventBySlug(t *testing.T) {
	react := &domain.Event{ID: "ev-1", Slug: "react-summit-2024", Title: "React Summit 2024"}

	tests := []struct {
		name       string
		slug       string
		svc        *fakeEventService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found",
			slug:       "react-summit-2024",
			svc:        &fakeEventService{eventsBySlug: map[string]*domain.Event{"react-summit-2024": react}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			slug:       "vue-conf-2024",
			svc:        &fakeEventService{},
			wantStatus: http.StatusNotFound,
			wantBody:   "Event not found",
		},
		{
			name:       "service error",
			slug:       "react-summit-2024",
			svc:        &fakeEventService{getErr: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Failed to fetch event",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodGet, "/api/events/"+tt.slug, nil)
			req.SetPathValue("slug", tt.slug)
			rr := httptest.NewRecorder()

			ctrl.GetEventBySlug(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				var msg helpers.MessageResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&msg))
				assert.Equal(t, tt.wantBody, msg.Message)
				return
			}
			var body GetEventResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, "React Summit 2024", body.Event.Title)
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("paginated", func(t *testing.T) {
		svc := &fakeEventService{
			list:  []*domain.Event{{ID: "ev-1", Slug: "react-summit-2024"}},
			total: 21,
		}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodGet, "/api/events?page=2&page_size=10", nil)
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 10}, svc.lastParams)
		var body ListEventsSuccessResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Nil(t, body.Error)
		assert.Len(t, body.Data.Items, 1)
		assert.Equal(t, 3, body.Data.Pagination.TotalPages)
	})

	t.Run("nil list encodes as empty array", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{})
		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"items":[]`)
	})

	t.Run("service error", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{listErr: errors.New("boom")})
		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		var body helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, helpers.ErrCodeInternalError, body.Error.Code)
	})
}
