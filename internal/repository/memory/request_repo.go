package memory

import (
	"context"
	"fmt"
	"sort"

	"explorewithme/internal/domain"

	"github.com/google/uuid"
)

type requestRepository struct {
	s *Store
}

func (r *requestRepository) Create(ctx context.Context, req *domain.ParticipationRequest) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[req.EventID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.users[req.RequesterID]; !ok {
		return domain.ErrNotFound
	}
	if req.Status != domain.RequestCanceled {
		for _, existing := range s.requests {
			if existing.EventID == req.EventID && existing.RequesterID == req.RequesterID &&
				existing.Status != domain.RequestCanceled {
				return fmt.Errorf("%w: participation request already exists", domain.ErrConflict)
			}
		}
	}
	req.ID = uuid.NewString()
	s.requests[req.ID] = *req
	id := req.ID
	journal(ctx, func() { delete(s.requests, id) })
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.ParticipationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &req, nil
}

func (r *requestRepository) GetActiveByEventAndRequester(ctx context.Context, eventID, requesterID string) (*domain.ParticipationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, req := range r.s.requests {
		if req.EventID == eventID && req.RequesterID == requesterID && req.Status != domain.RequestCanceled {
			return &req, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *requestRepository) CountActiveByEvent(ctx context.Context, eventID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, req := range r.s.requests {
		if req.EventID == eventID && req.Status != domain.RequestCanceled {
			n++
		}
	}
	return n, nil
}

func (r *requestRepository) ListByEvent(ctx context.Context, eventID string, ids []string) ([]*domain.ParticipationRequest, error) {
	want := toSet(ids)
	return r.list(func(req domain.ParticipationRequest) bool {
		return req.EventID == eventID && (len(want) == 0 || want[req.ID])
	}), nil
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domain.ParticipationRequest, error) {
	return r.list(func(req domain.ParticipationRequest) bool {
		return req.RequesterID == requesterID
	}), nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, ids []string, status domain.RequestStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, ok := s.requests[id]; !ok {
			return fmt.Errorf("update status: %w: request %s", domain.ErrNotFound, id)
		}
	}
	for _, id := range ids {
		prev := s.requests[id]
		next := prev
		next.Status = status
		s.requests[id] = next
		journal(ctx, func() { s.requests[prev.ID] = prev })
	}
	return nil
}

func (r *requestRepository) list(match func(domain.ParticipationRequest) bool) []*domain.ParticipationRequest {
	r.s.mu.RLock()
	out := make([]*domain.ParticipationRequest, 0)
	for _, req := range r.s.requests {
		if match(req) {
			req := req
			out = append(out, &req)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
