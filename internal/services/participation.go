package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"explorewithme/internal/domain"
)

var errLimitReached = fmt.Errorf("%w: participant limit reached", domain.ErrConflict)

type participationService struct {
	stores         Stores
	contextTimeout time.Duration
	now            func() time.Time
}

// NewParticipationService returns request admission, cancellation and moderation.
func NewParticipationService(stores Stores, timeout time.Duration) domain.ParticipationService {
	return &participationService{
		stores:         stores,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// CreateRequest admits a participation request. The event row stays locked from the
// capacity checks until the request and any reservation are written.
func (s *participationService) CreateRequest(ctx context.Context, requesterID, eventID string) (*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var created *domain.ParticipationRequest
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.stores.Requests.GetActiveByEventAndRequester(ctx, eventID, requesterID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: request for event %s already exists", domain.ErrConflict, eventID)
		case !isNotFound(err):
			return fmt.Errorf("get existing request: %w", err)
		}

		event, err := s.stores.Events.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if _, err := s.stores.Users.GetByID(ctx, requesterID); err != nil {
			return fmt.Errorf("get requester: %w", err)
		}
		if !event.IsPublished() {
			return fmt.Errorf("%w: participation is possible only in a published event", domain.ErrConflict)
		}
		if event.Initiator.ID == requesterID {
			return fmt.Errorf("%w: event initiator cannot request participation", domain.ErrConflict)
		}
		if event.IsFull() {
			return errLimitReached
		}

		status := domain.RequestPending
		// An unlimited event has nothing to moderate: ModerateRequests is a no-op for
		// limit 0, so a pending request there could never be confirmed.
		if !event.RequestModeration || event.ParticipantLimit == 0 {
			if !event.RequestModeration && event.ParticipantLimit > 0 {
				active, err := s.stores.Requests.CountActiveByEvent(ctx, eventID)
				if err != nil {
					return fmt.Errorf("count requests: %w", err)
				}
				if active >= event.ParticipantLimit {
					return errLimitReached
				}
			}
			if _, err := s.stores.Ledger.Reserve(ctx, eventID, 1); err != nil {
				if errors.Is(err, domain.ErrCapacityExceeded) {
					return errLimitReached
				}
				return fmt.Errorf("reserve place: %w", err)
			}
			status = domain.RequestConfirmed
		}

		req := domain.NewParticipationRequest(eventID, requesterID, status, s.now().UTC().Truncate(time.Second))
		if err := s.stores.Requests.Create(ctx, req); err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *participationService) CancelRequest(ctx context.Context, requesterID, requestID string) (*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.stores.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if req.RequesterID != requesterID {
		return nil, fmt.Errorf("request %s of user %s: %w", requestID, requesterID, domain.ErrNotFound)
	}

	err = s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.stores.Events.GetByIDForUpdate(ctx, req.EventID); err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		// Re-read under the event lock; moderation may have changed it.
		current, err := s.stores.Requests.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		req = current
		if req.Status == domain.RequestCanceled {
			return nil
		}
		next, err := req.Status.Transition(domain.RequestCanceled)
		if err != nil {
			return err
		}
		if err := s.stores.Requests.UpdateStatus(ctx, []string{req.ID}, next); err != nil {
			return fmt.Errorf("cancel request: %w", err)
		}
		req.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *participationService) ListByRequester(ctx context.Context, requesterID string) ([]*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.stores.Users.GetByID(ctx, requesterID); err != nil {
		return nil, fmt.Errorf("get requester: %w", err)
	}
	reqs, err := s.stores.Requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return reqs, nil
}

func (s *participationService) ListByEvent(ctx context.Context, initiatorID, eventID string) ([]*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.stores.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Initiator.ID != initiatorID {
		return nil, domain.ErrForbidden
	}
	reqs, err := s.stores.Requests.ListByEvent(ctx, eventID, nil)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return reqs, nil
}

// ModerateRequests confirms or rejects a batch of requests of one event. Every rule is
// checked before the first write and any failure rolls the whole batch back.
func (s *participationService) ModerateRequests(ctx context.Context, initiatorID, eventID string, in domain.ModerationRequest) (*domain.ModerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	ids := dedupe(in.RequestIDs)

	result := &domain.ModerationResult{
		Confirmed: []*domain.ParticipationRequest{},
		Rejected:  []*domain.ParticipationRequest{},
	}
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.stores.Events.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if event.Initiator.ID != initiatorID {
			return domain.ErrForbidden
		}
		if !event.RequestModeration || event.ParticipantLimit == 0 {
			return nil
		}

		selected, err := s.stores.Requests.ListByEvent(ctx, eventID, ids)
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}
		if len(selected) == 0 {
			return fmt.Errorf("requests of event %s: %w", eventID, domain.ErrNotFound)
		}
		for _, req := range selected {
			if _, err := req.Status.Transition(in.Status); err != nil {
				return fmt.Errorf("request %s: %w", req.ID, err)
			}
		}

		selectedIDs := make([]string, 0, len(selected))
		for _, req := range selected {
			selectedIDs = append(selectedIDs, req.ID)
		}
		if in.Status == domain.RequestConfirmed {
			if _, err := s.stores.Ledger.Reserve(ctx, eventID, len(selected)); err != nil {
				if errors.Is(err, domain.ErrCapacityExceeded) {
					return errLimitReached
				}
				return fmt.Errorf("reserve places: %w", err)
			}
		}
		if err := s.stores.Requests.UpdateStatus(ctx, selectedIDs, in.Status); err != nil {
			return fmt.Errorf("update requests: %w", err)
		}

		for _, req := range selected {
			req.Status = in.Status
		}
		if in.Status == domain.RequestConfirmed {
			result.Confirmed = selected
		} else {
			result.Rejected = selected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
