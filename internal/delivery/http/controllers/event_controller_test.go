package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"explorewithme/internal/delivery/http/helpers"
	"explorewithme/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *domain.Event {
	published := time.Date(2030, 1, 1, 13, 0, 0, 0, time.UTC)
	return &domain.Event{
		ID:                eventID,
		Annotation:        strings.Repeat("a", 20),
		Category:          domain.Category{ID: catID, Name: "Concerts"},
		Description:       strings.Repeat("d", 20),
		Title:             "Jazz night",
		Initiator:         domain.UserShort{ID: userID, Name: "Ann"},
		Location:          domain.Location{ID: "loc", Lat: 55.75, Lon: 37.61},
		EventDate:         time.Date(2030, 1, 2, 18, 0, 0, 0, time.UTC),
		CreatedOn:         time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
		PublishedOn:       &published,
		ParticipantLimit:  10,
		RequestModeration: true,
		ConfirmedRequests: 2,
		State:             domain.EventStatePublished,
		Views:             5,
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := `{"annotation":"aaaaaaaaaaaaaaaaaaaaaa","category":"` + catID + `","description":"dddddddddddddddddddddd",` +
		`"eventDate":"2030-01-02 18:00:00","location":{"lat":55.75,"lon":37.61},"title":"Jazz night"}`

	tests := []struct {
		name      string
		userID    string
		body      string
		svcErr    error
		wantCode  int
		wantError string
	}{
		{name: "created", userID: userID, body: validBody, wantCode: http.StatusCreated},
		{name: "malformed user id", userID: "42", body: validBody, wantCode: http.StatusBadRequest, wantError: helpers.ErrCodeValidation},
		{name: "unknown field", userID: userID, body: `{"foo":1}`, wantCode: http.StatusBadRequest, wantError: helpers.ErrCodeBadRequest},
		{name: "bad date format", userID: userID, body: `{"eventDate":"2030-01-02T18:00:00Z"}`, wantCode: http.StatusBadRequest, wantError: helpers.ErrCodeBadRequest},
		{name: "missing date and location", userID: userID, body: `{"title":"x"}`, wantCode: http.StatusBadRequest, wantError: helpers.ErrCodeValidation},
		{name: "unknown category", userID: userID, body: validBody, svcErr: fmt.Errorf("get category: %w", domain.ErrNotFound), wantCode: http.StatusNotFound, wantError: helpers.ErrCodeNotFound},
		{name: "domain validation", userID: userID, body: validBody, svcErr: domain.NewValidationError("title", "too short"), wantCode: http.StatusBadRequest, wantError: helpers.ErrCodeValidation},
		{name: "unexpected error", userID: userID, body: validBody, svcErr: errors.New("db down"), wantCode: http.StatusInternalServerError, wantError: helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{result: sampleEvent(), err: tt.svcErr}
			c := NewEventController(testLogger, svc, &fakeQueryService{}, &fakeParticipationService{})

			req := httptest.NewRequest(http.MethodPost, "/users/"+tt.userID+"/events", strings.NewReader(tt.body))
			req.SetPathValue("userId", tt.userID)
			rr := httptest.NewRecorder()
			c.CreateEvent(rr, req)

			require.Equal(t, tt.wantCode, rr.Code)
			if tt.wantError != "" {
				apiErr := decodeEnvelope(t, rr, nil)
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantError, apiErr.Code)
				if tt.wantCode == http.StatusInternalServerError {
					assert.NotContains(t, apiErr.Message, "db down")
				}
				return
			}
			var got map[string]any
			require.Nil(t, decodeEnvelope(t, rr, &got))
			assert.Equal(t, "2030-01-02 18:00:00", got["eventDate"])
			assert.Equal(t, "2030-01-01 13:00:00", got["publishedOn"])
			assert.Equal(t, float64(2), got["confirmedRequests"])
			assert.Equal(t, "PUBLISHED", got["state"])
			assert.Equal(t, userID, svc.lastInitiatorID)
			assert.True(t, svc.lastNewEvent.RequestModeration, "moderation defaults to true")
			assert.Equal(t, catID, svc.lastNewEvent.CategoryID)
			assert.Equal(t, time.Date(2030, 1, 2, 18, 0, 0, 0, time.UTC), svc.lastNewEvent.EventDate)
		})
	}
}

func TestEventController_CreateEvent_ExplicitModerationOff(t *testing.T) {
	svc := &fakeEventService{result: sampleEvent()}
	c := NewEventController(testLogger, svc, &fakeQueryService{}, &fakeParticipationService{})
	body := `{"eventDate":"2030-01-02 18:00:00","location":{"lat":1,"lon":2},"requestModeration":false,"participantLimit":5}`
	req := httptest.NewRequest(http.MethodPost, "/users/"+userID+"/events", strings.NewReader(body))
	req.SetPathValue("userId", userID)
	rr := httptest.NewRecorder()
	c.CreateEvent(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.False(t, svc.lastNewEvent.RequestModeration)
	assert.Equal(t, 5, svc.lastNewEvent.ParticipantLimit)
}

func TestEventController_ListEvents(t *testing.T) {
	q := &fakeQueryService{events: []*domain.Event{sampleEvent()}}
	c := NewEventController(testLogger, &fakeEventService{}, q, &fakeParticipationService{})

	req := httptest.NewRequest(http.MethodGet, "/users/"+userID+"/events?from=20&size=5", nil)
	req.SetPathValue("userId", userID)
	rr := httptest.NewRecorder()
	c.ListEvents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []EventShortDto
	require.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got, 1)
	assert.Equal(t, eventID, got[0].ID)
	assert.Equal(t, int64(5), got[0].Views)
	assert.Equal(t, domain.Page{From: 20, Size: 5}, q.lastPage)

	req = httptest.NewRequest(http.MethodGet, "/users/"+userID+"/events?size=0", nil)
	req.SetPathValue("userId", userID)
	rr = httptest.NewRecorder()
	c.ListEvents(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name     string
		eventID  string
		err      error
		wantCode int
	}{
		{"found", eventID, nil, http.StatusOK},
		{"other user's event", eventID, domain.ErrNotFound, http.StatusNotFound},
		{"malformed event id", "abc", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQueryService{event: sampleEvent(), err: tt.err}
			c := NewEventController(testLogger, &fakeEventService{}, q, &fakeParticipationService{})
			req := httptest.NewRequest(http.MethodGet, "/users/"+userID+"/events/"+tt.eventID, nil)
			req.SetPathValue("userId", userID)
			req.SetPathValue("eventId", tt.eventID)
			rr := httptest.NewRecorder()
			c.GetEvent(rr, req)
			require.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"cancel review", `{"stateAction":"CANCEL_REVIEW","title":"New title","eventDate":"2030-02-01 10:00:00"}`, nil, http.StatusOK},
		{"published event", `{"title":"New title"}`, fmt.Errorf("%w: published events cannot be changed", domain.ErrConflict), http.StatusConflict},
		{"not the initiator", `{"title":"New title"}`, domain.ErrForbidden, http.StatusForbidden},
		{"invalid json", `{"title":`, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{result: sampleEvent(), err: tt.err}
			c := NewEventController(testLogger, svc, &fakeQueryService{}, &fakeParticipationService{})
			req := httptest.NewRequest(http.MethodPatch, "/users/"+userID+"/events/"+eventID, strings.NewReader(tt.body))
			req.SetPathValue("userId", userID)
			req.SetPathValue("eventId", eventID)
			rr := httptest.NewRecorder()
			c.UpdateEvent(rr, req)
			require.Equal(t, tt.wantCode, rr.Code)
		})
	}

	svc := &fakeEventService{result: sampleEvent()}
	c := NewEventController(testLogger, svc, &fakeQueryService{}, &fakeParticipationService{})
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"stateAction":"SEND_TO_REVIEW","location":{"lat":1,"lon":2},"eventDate":"2030-02-01 10:00:00"}`))
	req.SetPathValue("userId", userID)
	req.SetPathValue("eventId", eventID)
	c.UpdateEvent(httptest.NewRecorder(), req)

	require.NotNil(t, svc.lastPatch.StateAction)
	assert.Equal(t, domain.ActionSendToReview, *svc.lastPatch.StateAction)
	require.NotNil(t, svc.lastPatch.Location)
	assert.Equal(t, domain.Location{Lat: 1, Lon: 2}, *svc.lastPatch.Location)
	require.NotNil(t, svc.lastPatch.EventDate)
	assert.Equal(t, time.Date(2030, 2, 1, 10, 0, 0, 0, time.UTC), *svc.lastPatch.EventDate)
	assert.Nil(t, svc.lastPatch.Title)
	assert.Equal(t, userID, svc.lastInitiatorID)
	assert.Equal(t, eventID, svc.lastEventID)
}

func TestEventController_ModerateRequests(t *testing.T) {
	created := time.Date(2030, 1, 1, 14, 0, 0, 0, time.UTC)
	confirmed := &domain.ParticipationRequest{ID: requestID, EventID: eventID, RequesterID: userID, Created: created, Status: domain.RequestConfirmed}

	t.Run("confirmed", func(t *testing.T) {
		svc := &fakeParticipationService{moderation: &domain.ModerationResult{
			Confirmed: []*domain.ParticipationRequest{confirmed},
			Rejected:  []*domain.ParticipationRequest{},
		}}
		c := NewEventController(testLogger, &fakeEventService{}, &fakeQueryService{}, svc)
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"requestIds":["`+requestID+`"],"status":"CONFIRMED"}`))
		req.SetPathValue("userId", userID)
		req.SetPathValue("eventId", eventID)
		rr := httptest.NewRecorder()
		c.ModerateRequests(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got RequestStatusUpdateResult
		require.Nil(t, decodeEnvelope(t, rr, &got))
		require.Len(t, got.ConfirmedRequests, 1)
		assert.Empty(t, got.RejectedRequests)
		assert.NotNil(t, got.RejectedRequests)
		assert.Equal(t, "2030-01-01 14:00:00", got.ConfirmedRequests[0].Created.Format(helpers.TimeLayout))
		assert.Equal(t, domain.ModerationRequest{RequestIDs: []string{requestID}, Status: domain.RequestConfirmed}, svc.lastModeration)
	})

	t.Run("limit reached", func(t *testing.T) {
		svc := &fakeParticipationService{err: fmt.Errorf("moderate: %w", domain.ErrCapacityExceeded)}
		c := NewEventController(testLogger, &fakeEventService{}, &fakeQueryService{}, svc)
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"requestIds":["`+requestID+`"],"status":"CONFIRMED"}`))
		req.SetPathValue("userId", userID)
		req.SetPathValue("eventId", eventID)
		rr := httptest.NewRecorder()
		c.ModerateRequests(rr, req)

		require.Equal(t, http.StatusConflict, rr.Code)
		apiErr := decodeEnvelope(t, rr, nil)
		require.NotNil(t, apiErr)
		assert.Contains(t, apiErr.Message, "participant limit reached")
	})
}

func TestEventController_ListEventRequests(t *testing.T) {
	svc := &fakeParticipationService{requests: []*domain.ParticipationRequest{
		{ID: requestID, EventID: eventID, RequesterID: userID, Status: domain.RequestPending},
	}}
	c := NewEventController(testLogger, &fakeEventService{}, &fakeQueryService{}, svc)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetPathValue("userId", userID)
	req.SetPathValue("eventId", eventID)
	rr := httptest.NewRecorder()
	c.ListEventRequests(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []map[string]any
	require.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got, 1)
	assert.Equal(t, eventID, got[0]["event"])
	assert.Equal(t, userID, got[0]["requester"])
	assert.Equal(t, "PENDING", got[0]["status"])
}
