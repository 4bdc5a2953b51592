package controllers

import (
	"log/slog"
	"net/http"

	"explorewithme/internal/delivery/http/helpers"
	"explorewithme/internal/domain"
)

// EventFullListSuccessResponse is the envelope of the admin search.
type EventFullListSuccessResponse struct {
	Data  []EventFullDto    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AdminEventController serves event moderation for administrators.
type AdminEventController struct {
	Logger  *slog.Logger
	Events  domain.EventService
	Queries domain.EventQueryService
}

func NewAdminEventController(logger *slog.Logger, events domain.EventService, queries domain.EventQueryService) *AdminEventController {
	return &AdminEventController{
		Logger:  logger,
		Events:  events,
		Queries: queries,
	}
}

// SearchEvents godoc
// @Summary Search events in any state
// @Tags admin events
// @Produce json
// @Security BearerAuth
// @Param users query []string false "Initiator IDs" collectionFormat(multi)
// @Param states query []string false "PENDING, PUBLISHED, CANCELED" collectionFormat(multi)
// @Param categories query []string false "Category IDs" collectionFormat(multi)
// @Param rangeStart query string false "yyyy-MM-dd HH:mm:ss"
// @Param rangeEnd query string false "yyyy-MM-dd HH:mm:ss"
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventFullListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/events [get]
func (c *AdminEventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAdminFilter(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, err := c.Queries.SearchAdmin(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFulls(events))
}

// UpdateEvent godoc
// @Summary Edit, publish or reject an event
// @Description stateAction accepts PUBLISH_EVENT and REJECT_EVENT. A published event must start at least one hour after publication.
// @Tags admin events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/events/{eventId} [patch]
func (c *AdminEventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.PathUUID(r, "eventId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Events.UpdateEventByAdmin(r.Context(), eventID, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

func parseAdminFilter(r *http.Request) (domain.AdminEventFilter, error) {
	var (
		f   domain.AdminEventFilter
		err error
	)
	if f.Users, err = helpers.QueryUUIDs(r, "users"); err != nil {
		return f, err
	}
	if f.Categories, err = helpers.QueryUUIDs(r, "categories"); err != nil {
		return f, err
	}
	for _, s := range helpers.QueryList(r, "states") {
		f.States = append(f.States, domain.EventState(s))
	}
	if f.RangeStart, err = helpers.ParseTimeQuery(r, "rangeStart"); err != nil {
		return f, err
	}
	if f.RangeEnd, err = helpers.ParseTimeQuery(r, "rangeEnd"); err != nil {
		return f, err
	}
	if f.Page, err = helpers.ParsePage(r); err != nil {
		return f, err
	}
	return f, nil
}
