package memory

import (
	"context"
	"sort"
	"strings"

	"explorewithme/internal/domain"

	"github.com/google/uuid"
)

type eventRepository struct {
	s *Store
}

// hydrate fills joined references and detaches the result from the stored value.
// Callers hold s.mu.
func (s *Store) hydrate(e domain.Event) *domain.Event {
	if c, ok := s.categories[e.Category.ID]; ok {
		e.Category = c
	}
	if u, ok := s.users[e.Initiator.ID]; ok {
		e.Initiator = u
	}
	if l, ok := s.locations[e.Location.ID]; ok {
		e.Location = l
	}
	if e.PublishedOn != nil {
		p := *e.PublishedOn
		e.PublishedOn = &p
	}
	return &e
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[e.Category.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.users[e.Initiator.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.locations[e.Location.ID]; !ok {
		return domain.ErrNotFound
	}
	e.ID = uuid.NewString()
	stored := *s.hydrate(*e)
	stored.Views = 0
	s.events[e.ID] = stored
	id := e.ID
	journal(ctx, func() { delete(s.events, id) })
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.hydrate(e), nil
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	s := r.s
	s.mu.RLock()
	_, ok := s.events[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.lockEvent(ctx, id)
	return r.GetByID(ctx, id)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.events[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.categories[e.Category.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.locations[e.Location.ID]; !ok {
		return domain.ErrNotFound
	}
	next := *s.hydrate(*e)
	next.ConfirmedRequests = prev.ConfirmedRequests
	next.Initiator = prev.Initiator
	next.CreatedOn = prev.CreatedOn
	next.Views = 0
	if next.ParticipantLimit > 0 && next.ConfirmedRequests > next.ParticipantLimit {
		return domain.ErrCapacityExceeded
	}
	s.events[e.ID] = next
	journal(ctx, func() { s.events[prev.ID] = prev })
	return nil
}

func (r *eventRepository) ListByInitiator(ctx context.Context, initiatorID string, page domain.Page) ([]*domain.Event, error) {
	return r.s.selectEvents(func(e domain.Event) bool {
		return e.Initiator.ID == initiatorID
	}, byID, page), nil
}

func (r *eventRepository) SearchPublic(ctx context.Context, f domain.PublicEventFilter) ([]*domain.Event, error) {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	categories := toSet(f.Categories)
	match := func(e domain.Event) bool {
		if e.State != domain.EventStatePublished {
			return false
		}
		if text != "" && !strings.Contains(strings.ToLower(e.Annotation), text) &&
			!strings.Contains(strings.ToLower(e.Description), text) {
			return false
		}
		if len(categories) > 0 && !categories[e.Category.ID] {
			return false
		}
		if f.Paid != nil && e.Paid != *f.Paid {
			return false
		}
		if !inRange(e, f.RangeStart, f.RangeEnd) {
			return false
		}
		if f.OnlyAvailable && e.IsFull() {
			return false
		}
		return true
	}
	return r.s.selectEvents(match, byDate, f.Page), nil
}

func (r *eventRepository) SearchAdmin(ctx context.Context, f domain.AdminEventFilter) ([]*domain.Event, error) {
	users := toSet(f.Users)
	categories := toSet(f.Categories)
	states := make(map[domain.EventState]bool, len(f.States))
	for _, st := range f.States {
		states[st] = true
	}
	match := func(e domain.Event) bool {
		if len(users) > 0 && !users[e.Initiator.ID] {
			return false
		}
		if len(states) > 0 && !states[e.State] {
			return false
		}
		if len(categories) > 0 && !categories[e.Category.ID] {
			return false
		}
		return inRange(e, f.RangeStart, f.RangeEnd)
	}
	return r.s.selectEvents(match, byID, f.Page), nil
}

type eventLess func(a, b *domain.Event) bool

func byID(a, b *domain.Event) bool { return a.ID < b.ID }

func byDate(a, b *domain.Event) bool {
	if !a.EventDate.Equal(b.EventDate) {
		return a.EventDate.Before(b.EventDate)
	}
	return a.ID < b.ID
}

func (s *Store) selectEvents(match func(domain.Event) bool, less eventLess, page domain.Page) []*domain.Event {
	s.mu.RLock()
	out := make([]*domain.Event, 0)
	for _, e := range s.events {
		if match(e) {
			out = append(out, s.hydrate(e))
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return domain.Paginate(out, page)
}
