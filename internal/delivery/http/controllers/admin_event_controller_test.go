package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"explorewithme/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminEventController_SearchEvents(t *testing.T) {
	q := &fakeQueryService{events: []*domain.Event{sampleEvent()}}
	c := NewAdminEventController(testLogger, &fakeEventService{}, q)

	req := httptest.NewRequest(http.MethodGet, "/admin/events?users="+userID+"&states=PENDING,PUBLISHED&states=CANCELED", nil)
	rr := httptest.NewRecorder()
	c.SearchEvents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []EventFullDto
	require.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{userID}, q.lastAdmin.Users)
	assert.Equal(t, []domain.EventState{domain.EventStatePending, domain.EventStatePublished, domain.EventStateCanceled}, q.lastAdmin.States)
	assert.Equal(t, domain.Page{Size: domain.DefaultPageSize}, q.lastAdmin.Page)

	rr = httptest.NewRecorder()
	c.SearchEvents(rr, httptest.NewRequest(http.MethodGet, "/admin/events?users=bob", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"published", nil, http.StatusOK},
		{"already published", fmt.Errorf("%w: event is not pending", domain.ErrConflict), http.StatusConflict},
		{"missing", domain.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{result: sampleEvent(), err: tt.err}
			c := NewAdminEventController(testLogger, svc, &fakeQueryService{})
			req := httptest.NewRequest(http.MethodPatch, "/admin/events/"+eventID, strings.NewReader(`{"stateAction":"PUBLISH_EVENT"}`))
			req.SetPathValue("eventId", eventID)
			rr := httptest.NewRecorder()
			c.UpdateEvent(rr, req)

			require.Equal(t, tt.wantCode, rr.Code)
			require.NotNil(t, svc.lastPatch.StateAction)
			assert.Equal(t, domain.ActionPublishEvent, *svc.lastPatch.StateAction)
			assert.Equal(t, eventID, svc.lastEventID)
		})
	}
}
