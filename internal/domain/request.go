package domain

import (
	"context"
	"time"
)

// RequestStatus is the moderation status of a participation request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestConfirmed, RequestRejected, RequestCanceled:
		return true
	}
	return false
}

// requestTransitions lists the statuses reachable from each status. Only PENDING moves.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:   {RequestConfirmed, RequestRejected, RequestCanceled},
	RequestConfirmed: nil,
	RequestRejected:  nil,
	RequestCanceled:  nil,
}

// CanTransition reports whether a request in status s may move to next.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, t := range requestTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Transition returns next, or a conflict when the move is not allowed.
func (s RequestStatus) Transition(next RequestStatus) (RequestStatus, error) {
	if !s.CanTransition(next) {
		if s == RequestConfirmed && next == RequestRejected {
			return s, conflictf("confirmed request cannot be rejected")
		}
		return s, conflictf("request in status %s cannot become %s", s, next)
	}
	return next, nil
}

// ParticipationRequest is a user's ask to attend an event.
// swagger:model ParticipationRequest
type ParticipationRequest struct {
	ID          string        `json:"id"`
	EventID     string        `json:"event"`
	RequesterID string        `json:"requester"`
	Created     time.Time     `json:"created"`
	Status      RequestStatus `json:"status"`
}

// NewParticipationRequest returns a request for eventID by requesterID. ID is set by the repository on create.
func NewParticipationRequest(eventID, requesterID string, status RequestStatus, created time.Time) *ParticipationRequest {
	return &ParticipationRequest{
		EventID:     eventID,
		RequesterID: requesterID,
		Created:     created,
		Status:      status,
	}
}

// ModerationRequest is an initiator's batch decision on requests of one event.
type ModerationRequest struct {
	RequestIDs []string
	Status     RequestStatus
}

// Validate checks the target status and that at least one id is given.
func (m ModerationRequest) Validate() error {
	var v Validator
	v.Check(len(m.RequestIDs) > 0, "requestIds", "must not be empty")
	for _, id := range m.RequestIDs {
		if id == "" {
			v.Check(false, "requestIds", "must not contain blank ids")
			break
		}
	}
	v.Check(m.Status == RequestConfirmed || m.Status == RequestRejected, "status", "must be CONFIRMED or REJECTED")
	return v.Err()
}

// ModerationResult lists the requests changed by one moderation batch.
type ModerationResult struct {
	Confirmed []*ParticipationRequest `json:"confirmed_requests"`
	Rejected  []*ParticipationRequest `json:"rejected_requests"`
}

// RequestRepository defines the interface for participation request storage.
type RequestRepository interface {
	Create(ctx context.Context, req *ParticipationRequest) error
	GetByID(ctx context.Context, id string) (*ParticipationRequest, error)
	// GetActiveByEventAndRequester returns the non-canceled request of requesterID for eventID.
	GetActiveByEventAndRequester(ctx context.Context, eventID, requesterID string) (*ParticipationRequest, error)
	CountActiveByEvent(ctx context.Context, eventID string) (int, error)
	// ListByEvent returns requests of the event ordered by creation. A non-empty ids restricts the result.
	ListByEvent(ctx context.Context, eventID string, ids []string) ([]*ParticipationRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*ParticipationRequest, error)
	UpdateStatus(ctx context.Context, ids []string, status RequestStatus) error
}

// ParticipationService covers request admission, cancellation and moderation.
type ParticipationService interface {
	CreateRequest(ctx context.Context, requesterID, eventID string) (*ParticipationRequest, error)
	CancelRequest(ctx context.Context, requesterID, requestID string) (*ParticipationRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*ParticipationRequest, error)
	// ListByEvent returns the requests submitted to an event owned by initiatorID.
	ListByEvent(ctx context.Context, initiatorID, eventID string) ([]*ParticipationRequest, error)
	ModerateRequests(ctx context.Context, initiatorID, eventID string, in ModerationRequest) (*ModerationResult, error)
}
