package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"explorewithme/internal/domain"
)

// minPublishLead is the minimum distance between publication and the event date.
const minPublishLead = time.Hour

type eventService struct {
	stores         Stores
	leadTime       time.Duration
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns the write side of the event lifecycle. leadTime is the
// minimum distance between now and the date of an event created or edited by its initiator.
func NewEventService(stores Stores, leadTime, timeout time.Duration) domain.EventService {
	return &eventService{
		stores:         stores,
		leadTime:       leadTime,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) clock() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

func (s *eventService) CreateEvent(ctx context.Context, initiatorID string, in domain.NewEvent) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.clock()
	if in.EventDate.Before(now.Add(s.leadTime)) {
		return nil, domain.NewValidationError("eventDate", fmt.Sprintf("must be at least %s from now", s.leadTime))
	}

	event := &domain.Event{
		Annotation:        in.Annotation,
		Description:       in.Description,
		Title:             in.Title,
		EventDate:         in.EventDate.UTC(),
		CreatedOn:         now,
		Paid:              in.Paid,
		ParticipantLimit:  in.ParticipantLimit,
		RequestModeration: in.RequestModeration,
		State:             domain.EventStatePending,
	}
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		initiator, err := s.stores.Users.GetByID(ctx, initiatorID)
		if err != nil {
			return fmt.Errorf("get initiator: %w", err)
		}
		category, err := s.stores.Categories.GetByID(ctx, in.CategoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		loc := in.Location
		if err := s.stores.Locations.FindOrCreate(ctx, &loc); err != nil {
			return fmt.Errorf("save location: %w", err)
		}
		event.Initiator = *initiator
		event.Category = *category
		event.Location = loc
		if err := s.stores.Events.Create(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) UpdateEventByInitiator(ctx context.Context, initiatorID, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.StateAction != nil && !patch.StateAction.IsInitiator() {
		return nil, domain.NewValidationError("stateAction", "must be SEND_TO_REVIEW or CANCEL_REVIEW")
	}
	now := s.clock()
	if patch.EventDate != nil && patch.EventDate.Before(now.Add(s.leadTime)) {
		return nil, domain.NewValidationError("eventDate", fmt.Sprintf("must be at least %s from now", s.leadTime))
	}

	var updated *domain.Event
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.stores.Events.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if event.Initiator.ID != initiatorID {
			return domain.ErrForbidden
		}
		if event.IsPublished() {
			return fmt.Errorf("%w: published events cannot be changed", domain.ErrConflict)
		}
		if err := s.applyEventPatch(ctx, event, patch); err != nil {
			return err
		}
		if patch.StateAction != nil {
			if err := event.ApplyStateAction(*patch.StateAction, now); err != nil {
				return err
			}
		}
		if err := s.stores.Events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventService) UpdateEventByAdmin(ctx context.Context, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.StateAction != nil && !patch.StateAction.IsAdmin() {
		return nil, domain.NewValidationError("stateAction", "must be PUBLISH_EVENT or REJECT_EVENT")
	}
	now := s.clock()
	if patch.EventDate != nil && patch.EventDate.Before(now) {
		return nil, domain.NewValidationError("eventDate", "must not be in the past")
	}

	var updated *domain.Event
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.stores.Events.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if err := s.applyEventPatch(ctx, event, patch); err != nil {
			return err
		}
		if patch.StateAction != nil {
			if err := event.ApplyStateAction(*patch.StateAction, now); err != nil {
				return err
			}
		}
		if event.PublishedOn != nil && event.EventDate.Before(event.PublishedOn.Add(minPublishLead)) {
			return fmt.Errorf("%w: event date must be at least %s after publication", domain.ErrConflict, minPublishLead)
		}
		if err := s.stores.Events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyEventPatch resolves every referenced entity before assigning any field,
// so a failed lookup leaves event untouched.
func (s *eventService) applyEventPatch(ctx context.Context, event *domain.Event, patch domain.EventPatch) error {
	var category *domain.Category
	if patch.CategoryID != nil && *patch.CategoryID != event.Category.ID {
		c, err := s.stores.Categories.GetByID(ctx, *patch.CategoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		category = c
	}
	if patch.ParticipantLimit != nil {
		limit := *patch.ParticipantLimit
		if limit > 0 && limit < event.ConfirmedRequests {
			return fmt.Errorf("%w: participant limit %d is below %d confirmed requests",
				domain.ErrConflict, limit, event.ConfirmedRequests)
		}
	}
	var location *domain.Location
	if patch.Location != nil {
		loc := *patch.Location
		if err := s.stores.Locations.FindOrCreate(ctx, &loc); err != nil {
			return fmt.Errorf("save location: %w", err)
		}
		location = &loc
	}

	if patch.Annotation != nil {
		event.Annotation = *patch.Annotation
	}
	if category != nil {
		event.Category = *category
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.EventDate != nil {
		event.EventDate = patch.EventDate.UTC()
	}
	if location != nil {
		event.Location = *location
	}
	if patch.Paid != nil {
		event.Paid = *patch.Paid
	}
	if patch.ParticipantLimit != nil {
		event.ParticipantLimit = *patch.ParticipantLimit
	}
	if patch.RequestModeration != nil {
		event.RequestModeration = *patch.RequestModeration
	}
	return nil
}

// isNotFound reports whether err wraps domain.ErrNotFound.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
