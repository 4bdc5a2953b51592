package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"explorewithme/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicEventController_SearchEvents(t *testing.T) {
	q := &fakeQueryService{events: []*domain.Event{sampleEvent()}}
	c := NewPublicEventController(testLogger, q)

	url := "/events?text=jazz&categories=" + catID + "&paid=false&onlyAvailable=true&sort=VIEWS" +
		"&rangeStart=2030-01-01%2000:00:00&from=10&size=20"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rr := httptest.NewRecorder()
	c.SearchEvents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []EventShortDto
	require.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got, 1)

	f := q.lastPublic
	assert.Equal(t, "jazz", f.Text)
	assert.Equal(t, []string{catID}, f.Categories)
	require.NotNil(t, f.Paid)
	assert.False(t, *f.Paid)
	assert.True(t, f.OnlyAvailable)
	assert.Equal(t, domain.SortViews, f.Sort)
	require.NotNil(t, f.RangeStart)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), *f.RangeStart)
	assert.Nil(t, f.RangeEnd)
	assert.Equal(t, domain.Page{From: 10, Size: 20}, f.Page)
	assert.Equal(t, "203.0.113.7", q.lastClientIP)
}

func TestPublicEventController_SearchEvents_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad range", "?rangeEnd=tomorrow"},
		{"bad paid", "?paid=maybe"},
		{"bad category", "?categories=1,2"},
		{"negative from", "?from=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQueryService{}
			c := NewPublicEventController(testLogger, q)
			rr := httptest.NewRecorder()
			c.SearchEvents(rr, httptest.NewRequest(http.MethodGet, "/events"+tt.query, nil))
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, q.lastClientIP, "service not called")
		})
	}
}

func TestPublicEventController_GetEvent(t *testing.T) {
	q := &fakeQueryService{event: sampleEvent()}
	c := NewPublicEventController(testLogger, q)
	req := httptest.NewRequest(http.MethodGet, "/events/"+eventID, nil)
	req.SetPathValue("eventId", eventID)
	rr := httptest.NewRecorder()
	c.GetEvent(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got EventFullDto
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, int64(5), got.Views)
	assert.Equal(t, LocationDto{Lat: 55.75, Lon: 37.61}, got.Location)
	assert.Equal(t, eventID, q.lastEventID)

	q.err = domain.ErrNotFound
	rr = httptest.NewRecorder()
	c.GetEvent(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
