package controllers

import (
	"log/slog"
	"net/http"

	"explorewithme/internal/delivery/http/helpers"
	"explorewithme/internal/domain"
)

// EventSuccessResponse is the envelope of endpoints returning one event.
type EventSuccessResponse struct {
	Data  EventFullDto      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventShortListSuccessResponse is the envelope of endpoints returning short events.
type EventShortListSuccessResponse struct {
	Data  []EventShortDto   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RequestListSuccessResponse is the envelope of endpoints returning requests.
type RequestListSuccessResponse struct {
	Data  []ParticipationRequestDto `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// RequestStatusUpdateSuccessResponse is the envelope of the moderation endpoint.
type RequestStatusUpdateSuccessResponse struct {
	Data  RequestStatusUpdateResult `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// EventController serves the initiator's view of their own events.
type EventController struct {
	Logger   *slog.Logger
	Events   domain.EventService
	Queries  domain.EventQueryService
	Requests domain.ParticipationService
}

func NewEventController(logger *slog.Logger, events domain.EventService, queries domain.EventQueryService, requests domain.ParticipationService) *EventController {
	return &EventController{
		Logger:   logger,
		Events:   events,
		Queries:  queries,
		Requests: requests,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a PENDING event owned by the user. The event date must be at least two hours ahead.
// @Tags private events
// @Accept json
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param event body NewEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (user or category)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userId}/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathUUID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var req NewEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Events.CreateEvent(r.Context(), userID, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toEventFull(event))
}

// ListEvents godoc
// @Summary List the user's events
// @Description Events created by the user ordered by id.
// @Tags private events
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventShortListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathUUID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	page, err := helpers.ParsePage(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, err := c.Queries.ListByInitiator(r.Context(), userID, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventShorts(events))
}

// GetEvent godoc
// @Summary Get one of the user's events
// @Tags private events
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param eventId path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/events/{eventId} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	event, err := c.Queries.GetByInitiator(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

// UpdateEvent godoc
// @Summary Edit one of the user's events
// @Description Only PENDING or CANCELED events can be edited. stateAction accepts SEND_TO_REVIEW and CANCEL_REVIEW.
// @Tags private events
// @Accept json
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param eventId path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the initiator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (published event)"
// @Router /users/{userId}/events/{eventId} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Events.UpdateEventByInitiator(r.Context(), userID, eventID, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

// ListEventRequests godoc
// @Summary List participation requests of the user's event
// @Tags private events
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param eventId path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RequestListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/events/{eventId}/requests [get]
func (c *EventController) ListEventRequests(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	reqs, err := c.Requests.ListByEvent(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toRequestDtos(reqs))
}

// ModerateRequests godoc
// @Summary Confirm or reject participation requests
// @Description Applies one status to every listed request. The whole batch fails if any request is not PENDING or the participant limit would be exceeded.
// @Tags private events
// @Accept json
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param eventId path string true "Event ID (UUID)"
// @Param body body RequestStatusUpdateRequest true "Request ids and target status"
// @Success 200 {object} controllers.RequestStatusUpdateSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userId}/events/{eventId}/requests [patch]
func (c *EventController) ModerateRequests(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	var req RequestStatusUpdateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Requests.ModerateRequests(r.Context(), userID, eventID, domain.ModerationRequest{
		RequestIDs: req.RequestIDs,
		Status:     domain.RequestStatus(req.Status),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RequestStatusUpdateResult{
		ConfirmedRequests: toRequestDtos(result.Confirmed),
		RejectedRequests:  toRequestDtos(result.Rejected),
	})
}

func (c *EventController) userAndEvent(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, err := helpers.PathUUID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return "", "", false
	}
	eventID, err := helpers.PathUUID(r, "eventId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return "", "", false
	}
	return userID, eventID, true
}
