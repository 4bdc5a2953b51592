package controllers

import (
	"log/slog"
	"net/http"

	"explorewithme/internal/delivery/http/helpers"
	"explorewithme/internal/domain"
)

// PublicEventController serves published events to anonymous visitors.
type PublicEventController struct {
	Logger  *slog.Logger
	Queries domain.EventQueryService
}

func NewPublicEventController(logger *slog.Logger, queries domain.EventQueryService) *PublicEventController {
	return &PublicEventController{Logger: logger, Queries: queries}
}

// SearchEvents godoc
// @Summary Search published events
// @Description Without a date range only future events are returned. Each returned event counts one view.
// @Tags public events
// @Produce json
// @Param text query string false "Case-insensitive match on annotation and description"
// @Param categories query []string false "Category IDs" collectionFormat(multi)
// @Param paid query bool false "Paid events only or free events only"
// @Param rangeStart query string false "yyyy-MM-dd HH:mm:ss"
// @Param rangeEnd query string false "yyyy-MM-dd HH:mm:ss"
// @Param onlyAvailable query bool false "Skip events whose participant limit is reached" default(false)
// @Param sort query string false "EVENT_DATE or VIEWS" Enums(EVENT_DATE, VIEWS)
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventShortListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /events [get]
func (c *PublicEventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePublicFilter(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, err := c.Queries.SearchPublic(r.Context(), filter, helpers.ClientIP(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventShorts(events))
}

// GetEvent godoc
// @Summary Get a published event
// @Description Counts one view of the event.
// @Tags public events
// @Produce json
// @Param eventId path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (missing or unpublished)"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /events/{eventId} [get]
func (c *PublicEventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.PathUUID(r, "eventId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Queries.GetPublished(r.Context(), eventID, helpers.ClientIP(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

func parsePublicFilter(r *http.Request) (domain.PublicEventFilter, error) {
	var (
		f   domain.PublicEventFilter
		err error
	)
	q := r.URL.Query()
	f.Text = q.Get("text")
	f.Sort = domain.EventSort(q.Get("sort"))
	if f.Categories, err = helpers.QueryUUIDs(r, "categories"); err != nil {
		return f, err
	}
	if f.Paid, err = helpers.QueryBool(r, "paid"); err != nil {
		return f, err
	}
	onlyAvailable, err := helpers.QueryBool(r, "onlyAvailable")
	if err != nil {
		return f, err
	}
	f.OnlyAvailable = onlyAvailable != nil && *onlyAvailable
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
