package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"explorewithme/internal/domain"
)

// maxViewSortCandidates caps the events loaded to order a public search by views.
// Matches beyond it, in event date order, are left out of that ordering.
const maxViewSortCandidates = 10000

type eventQueryService struct {
	stores         Stores
	views          *viewResolver
	contextTimeout time.Duration
	viewSortLimit  int
	now            func() time.Time
}

// NewEventQueryService returns the read side of events. app names this service in recorded hits.
func NewEventQueryService(stores Stores, counter domain.ViewCounter, app string, logger *slog.Logger, timeout time.Duration) domain.EventQueryService {
	return &eventQueryService{
		stores:         stores,
		views:          newViewResolver(counter, app, logger),
		contextTimeout: timeout,
		viewSortLimit:  maxViewSortCandidates,
		now:            time.Now,
	}
}

func (s *eventQueryService) SearchPublic(ctx context.Context, filter domain.PublicEventFilter, clientIP string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	switch filter.Sort {
	case "":
		filter.Sort = domain.SortEventDate
	case domain.SortEventDate, domain.SortViews:
	default:
		return nil, domain.NewValidationError("sort", "must be EVENT_DATE or VIEWS")
	}
	if err := checkRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	if filter.RangeStart == nil && filter.RangeEnd == nil {
		now := s.now().UTC()
		filter.RangeStart = &now
	}
	if err := s.checkCategories(ctx, filter.Categories); err != nil {
		return nil, err
	}

	var events []*domain.Event
	if filter.Sort == domain.SortViews {
		page := filter.Page
		filter.Page = domain.Page{Size: s.viewSortLimit}
		all, err := s.stores.Events.SearchPublic(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
		s.views.resolve(ctx, all)
		sort.SliceStable(all, func(i, j int) bool { return all[i].Views < all[j].Views })
		events = domain.Paginate(all, page)
	} else {
		found, err := s.stores.Events.SearchPublic(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
		s.views.resolve(ctx, found)
		events = found
	}
	s.views.record(ctx, clientIP, events)
	return events, nil
}

func (s *eventQueryService) GetPublished(ctx context.Context, eventID, clientIP string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.stores.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.State != domain.EventStatePublished {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	batch := []*domain.Event{event}
	s.views.resolve(ctx, batch)
	s.views.record(ctx, clientIP, batch)
	return event, nil
}

func (s *eventQueryService) SearchAdmin(ctx context.Context, filter domain.AdminEventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := checkRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	for _, st := range filter.States {
		if !st.Valid() {
			return nil, domain.NewValidationError("states", "unknown state "+string(st))
		}
	}
	events, err := s.stores.Events.SearchAdmin(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	s.views.resolve(ctx, events)
	return events, nil
}

func (s *eventQueryService) ListByInitiator(ctx context.Context, initiatorID string, page domain.Page) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.stores.Users.GetByID(ctx, initiatorID); err != nil {
		return nil, fmt.Errorf("get initiator: %w", err)
	}
	events, err := s.stores.Events.ListByInitiator(ctx, initiatorID, page)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetByInitiator hides events of other users behind ErrNotFound.
func (s *eventQueryService) GetByInitiator(ctx context.Context, initiatorID, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.stores.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Initiator.ID != initiatorID {
		return nil, fmt.Errorf("event %s of user %s: %w", eventID, initiatorID, domain.ErrNotFound)
	}
	return event, nil
}

func (s *eventQueryService) checkCategories(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	unique := dedupe(ids)
	found, err := s.stores.Categories.ListByIDs(ctx, unique)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(found) != len(unique) {
		return domain.NewValidationError("categories", "contains unknown category")
	}
	return nil
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return domain.NewValidationError("rangeStart", "must not be after rangeEnd")
	}
	return nil
}
