package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"explorewithme/internal/delivery/http/helpers"
	"explorewithme/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	userID    = "11111111-1111-4111-8111-111111111111"
	eventID   = "22222222-2222-4222-8222-222222222222"
	requestID = "33333333-3333-4333-8333-333333333333"
	catID     = "44444444-4444-4444-8444-444444444444"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	result          *domain.Event
	err             error
	lastInitiatorID string
	lastEventID     string
	lastNewEvent    domain.NewEvent
	lastPatch       domain.EventPatch
}

func (f *fakeEventService) CreateEvent(_ context.Context, initiatorID string, in domain.NewEvent) (*domain.Event, error) {
	f.lastInitiatorID, f.lastNewEvent = initiatorID, in
	return f.result, f.err
}

func (f *fakeEventService) UpdateEventByInitiator(_ context.Context, initiatorID, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastInitiatorID, f.lastEventID, f.lastPatch = initiatorID, eventID, patch
	return f.result, f.err
}

func (f *fakeEventService) UpdateEventByAdmin(_ context.Context, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastEventID, f.lastPatch = eventID, patch
	return f.result, f.err
}

// fakeQueryService implements domain.EventQueryService for handler tests.
type fakeQueryService struct {
	events       []*domain.Event
	event        *domain.Event
	err          error
	lastPublic   domain.PublicEventFilter
	lastAdmin    domain.AdminEventFilter
	lastPage     domain.Page
	lastClientIP string
	lastUserID   string
	lastEventID  string
}

func (f *fakeQueryService) SearchPublic(_ context.Context, filter domain.PublicEventFilter, clientIP string) ([]*domain.Event, error) {
	f.lastPublic, f.lastClientIP = filter, clientIP
	return f.events, f.err
}

func (f *fakeQueryService) GetPublished(_ context.Context, eventID, clientIP string) (*domain.Event, error) {
	f.lastEventID, f.lastClientIP = eventID, clientIP
	return f.event, f.err
}

func (f *fakeQueryService) SearchAdmin(_ context.Context, filter domain.AdminEventFilter) ([]*domain.Event, error) {
	f.lastAdmin = filter
	return f.events, f.err
}

func (f *fakeQueryService) ListByInitiator(_ context.Context, initiatorID string, page domain.Page) ([]*domain.Event, error) {
	f.lastUserID, f.lastPage = initiatorID, page
	return f.events, f.err
}

func (f *fakeQueryService) GetByInitiator(_ context.Context, initiatorID, eventID string) (*domain.Event, error) {
	f.lastUserID, f.lastEventID = initiatorID, eventID
	return f.event, f.err
}

// fakeParticipationService implements domain.ParticipationService for handler tests.
type fakeParticipationService struct {
	request        *domain.ParticipationRequest
	requests       []*domain.ParticipationRequest
	moderation     *domain.ModerationResult
	err            error
	lastUserID     string
	lastEventID    string
	lastRequestID  string
	lastModeration domain.ModerationRequest
}

func (f *fakeParticipationService) CreateRequest(_ context.Context, requesterID, eventID string) (*domain.ParticipationRequest, error) {
	f.lastUserID, f.lastEventID = requesterID, eventID
	return f.request, f.err
}

func (f *fakeParticipationService) CancelRequest(_ context.Context, requesterID, requestID string) (*domain.ParticipationRequest, error) {
	f.lastUserID, f.lastRequestID = requesterID, requestID
	return f.request, f.err
}

func (f *fakeParticipationService) ListByRequester(_ context.Context, requesterID string) ([]*domain.ParticipationRequest, error) {
	f.lastUserID = requesterID
	return f.requests, f.err
}

func (f *fakeParticipationService) ListByEvent(_ context.Context, initiatorID, eventID string) ([]*domain.ParticipationRequest, error) {
	f.lastUserID, f.lastEventID = initiatorID, eventID
	return f.requests, f.err
}

func (f *fakeParticipationService) ModerateRequests(_ context.Context, initiatorID, eventID string, in domain.ModerationRequest) (*domain.ModerationResult, error) {
	f.lastUserID, f.lastEventID, f.lastModeration = initiatorID, eventID, in
	return f.moderation, f.err
}

// decodeEnvelope decodes the response body, storing data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}
