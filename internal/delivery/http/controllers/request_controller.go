package controllers

import (
	"log/slog"
	"net/http"

	"explorewithme/internal/delivery/http/helpers"
	"explorewithme/internal/domain"

	"github.com/google/uuid"
)

// RequestSuccessResponse is the envelope of endpoints returning one request.
type RequestSuccessResponse struct {
	Data  ParticipationRequestDto `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// RequestController serves a user's own participation requests.
type RequestController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
}

func NewRequestController(logger *slog.Logger, svc domain.ParticipationService) *RequestController {
	return &RequestController{
		Logger:  logger,
		Service: svc,
	}
}

// ListRequests godoc
// @Summary List the user's participation requests
// @Tags private requests
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Success 200 {object} controllers.RequestListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/requests [get]
func (c *RequestController) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathUUID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	reqs, err := c.Service.ListByRequester(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toRequestDtos(reqs))
}

// CreateRequest godoc
// @Summary Request participation in an event
// @Description The request is CONFIRMED right away when the event does not moderate requests or has no participant limit, PENDING otherwise.
// @Tags private requests
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param eventId query string true "Event ID (UUID)"
// @Success 201 {object} controllers.RequestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate, own event, unpublished, limit reached)"
// @Router /users/{userId}/requests [post]
func (c *RequestController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathUUID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	eventID := r.URL.Query().Get("eventId")
	if uuid.Validate(eventID) != nil {
		helpers.WriteValidationError(w, domain.NewValidationError("eventId", "is required and must be a UUID"))
		return
	}
	req, err := c.Service.CreateRequest(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toRequestDto(req))
}

// CancelRequest godoc
// @Summary Cancel the user's participation request
// @Tags private requests
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Param requestId path string true "Request ID (UUID)"
// @Success 200 {object} controllers.RequestSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (request already decided)"
// @Router /users/{userId}/requests/{requestId}/cancel [patch]
func (c *RequestController) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathUUID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	requestID, err := helpers.PathUUID(r, "requestId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req, err := c.Service.CancelRequest(r.Context(), userID, requestID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toRequestDto(req))
}
