package memory

import (
	"context"
	"time"

	"explorewithme/internal/domain"

	"github.com/google/uuid"
)

type categoryRepository struct {
	s *Store
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *categoryRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Category
	for id := range toSet(ids) {
		if c, ok := r.s.categories[id]; ok {
			out = append(out, &c)
		}
	}
	return out, nil
}

type userRepository struct {
	s *Store
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserShort, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

type locationRepository struct {
	s *Store
}

func (r *locationRepository) FindOrCreate(ctx context.Context, loc *domain.Location) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]float64{loc.Lat, loc.Lon}
	if id, ok := s.locByPoint[key]; ok {
		loc.ID = id
		return nil
	}
	loc.ID = uuid.NewString()
	s.locations[loc.ID] = *loc
	s.locByPoint[key] = loc.ID
	id := loc.ID
	journal(ctx, func() {
		delete(s.locations, id)
		delete(s.locByPoint, key)
	})
	return nil
}

type capacityLedger struct {
	s *Store
}

// Reserve checks and increments under the store write lock, so it is atomic
// even when the caller holds no event lock.
func (l *capacityLedger) Reserve(ctx context.Context, eventID string, n int) (int, error) {
	if n < 0 {
		return 0, domain.NewValidationError("count", "must not be negative")
	}
	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if err := e.CheckCapacity(n); err != nil {
		return 0, err
	}
	prev := e.ConfirmedRequests
	e.ConfirmedRequests += n
	s.events[eventID] = e
	journal(ctx, func() {
		restored := s.events[eventID]
		restored.ConfirmedRequests = prev
		s.events[eventID] = restored
	})
	return e.ConfirmedRequests, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func inRange(e domain.Event, start, end *time.Time) bool {
	if start != nil && e.EventDate.Before(*start) {
		return false
	}
	if end != nil && e.EventDate.After(*end) {
		return false
	}
	return true
}
