package domain

import (
	"context"
	"strconv"
	"time"
	"unicode/utf8"
)

// EventState is the publication state of an event.
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// Valid reports whether s is one of the known states.
func (s EventState) Valid() bool {
	switch s {
	case EventStatePending, EventStatePublished, EventStateCanceled:
		return true
	}
	return false
}

// EventStateAction is a requested state change. PUBLISH_EVENT and REJECT_EVENT
// belong to administrators; SEND_TO_REVIEW and CANCEL_REVIEW to the initiator.
type EventStateAction string

const (
	ActionPublishEvent EventStateAction = "PUBLISH_EVENT"
	ActionRejectEvent  EventStateAction = "REJECT_EVENT"
	ActionSendToReview EventStateAction = "SEND_TO_REVIEW"
	ActionCancelReview EventStateAction = "CANCEL_REVIEW"
)

// IsAdmin reports whether the action is available on the admin edit path.
func (a EventStateAction) IsAdmin() bool {
	return a == ActionPublishEvent || a == ActionRejectEvent
}

// IsInitiator reports whether the action is available on the initiator edit path.
func (a EventStateAction) IsInitiator() bool {
	return a == ActionSendToReview || a == ActionCancelReview
}

// eventTransitions lists, per action, the source states it accepts and the resulting state.
var eventTransitions = map[EventStateAction]map[EventState]EventState{
	ActionPublishEvent: {EventStatePending: EventStatePublished},
	ActionRejectEvent:  {EventStatePending: EventStateCanceled},
	ActionSendToReview: {EventStatePending: EventStatePending, EventStateCanceled: EventStatePending},
	ActionCancelReview: {EventStatePending: EventStateCanceled, EventStateCanceled: EventStateCanceled},
}

// Apply returns the state reached by applying action to s.
func (s EventState) Apply(action EventStateAction) (EventState, error) {
	targets, ok := eventTransitions[action]
	if !ok {
		return s, NewValidationError("stateAction", "unknown state action "+string(action))
	}
	next, ok := targets[s]
	if !ok {
		switch s {
		case EventStatePublished:
			return s, conflictf("event is already published")
		case EventStateCanceled:
			return s, conflictf("event is canceled")
		}
		return s, conflictf("cannot %s an event in state %s", action, s)
	}
	return next, nil
}

// Event is a publishable activity with a capacity-limited participant list.
type Event struct {
	ID                string     `json:"id"`
	Annotation        string     `json:"annotation"`
	Category          Category   `json:"category"`
	Description       string     `json:"description"`
	Title             string     `json:"title"`
	Initiator         UserShort  `json:"initiator"`
	Location          Location   `json:"location"`
	EventDate         time.Time  `json:"event_date"`
	CreatedOn         time.Time  `json:"created_on"`
	PublishedOn       *time.Time `json:"published_on"`
	Paid              bool       `json:"paid"`
	ParticipantLimit  int        `json:"participant_limit"`
	RequestModeration bool       `json:"request_moderation"`
	ConfirmedRequests int        `json:"confirmed_requests"`
	State             EventState `json:"state"`
	// Views is resolved from the view counter at read time and never persisted.
	Views int64 `json:"views"`
}

// ApplyStateAction moves the event through the state machine. Publishing stamps PublishedOn.
func (e *Event) ApplyStateAction(action EventStateAction, now time.Time) error {
	next, err := e.State.Apply(action)
	if err != nil {
		return err
	}
	if next == EventStatePublished && e.State != EventStatePublished {
		published := now
		e.PublishedOn = &published
	}
	e.State = next
	return nil
}

// IsPublished reports whether the event has been published.
func (e *Event) IsPublished() bool {
	return e.PublishedOn != nil
}

// IsFull reports whether a limited event has no free places left.
func (e *Event) IsFull() bool {
	return e.ParticipantLimit > 0 && e.ConfirmedRequests >= e.ParticipantLimit
}

// CheckCapacity reports whether n more confirmations fit under the participant limit.
func (e *Event) CheckCapacity(n int) error {
	if n < 0 {
		return NewValidationError("count", "must not be negative")
	}
	if e.ParticipantLimit == 0 {
		return nil
	}
	if e.ConfirmedRequests+n > e.ParticipantLimit {
		return ErrCapacityExceeded
	}
	return nil
}

// Text field bounds.
const (
	AnnotationMinLen  = 20
	AnnotationMaxLen  = 2000
	DescriptionMinLen = 20
	DescriptionMaxLen = 7000
	TitleMinLen       = 3
	TitleMaxLen       = 120
)

// NewEvent holds the draft fields submitted by an initiator.
type NewEvent struct {
	Annotation        string
	CategoryID        string
	Description       string
	Title             string
	EventDate         time.Time
	Location          Location
	Paid              bool
	ParticipantLimit  int
	RequestModeration bool
}

// Validate checks field bounds. Date lead time is checked by the service.
func (n NewEvent) Validate() error {
	var v Validator
	checkText(&v, "annotation", n.Annotation, AnnotationMinLen, AnnotationMaxLen)
	checkText(&v, "description", n.Description, DescriptionMinLen, DescriptionMaxLen)
	checkText(&v, "title", n.Title, TitleMinLen, TitleMaxLen)
	v.Check(n.CategoryID != "", "category", "is required")
	v.Check(!n.EventDate.IsZero(), "eventDate", "is required")
	v.Check(n.ParticipantLimit >= 0, "participantLimit", "must be 0 or greater")
	checkLocation(&v, n.Location)
	return v.Err()
}

// EventPatch holds optional edits. Nil fields are left unchanged.
type EventPatch struct {
	Annotation        *string
	CategoryID        *string
	Description       *string
	Title             *string
	EventDate         *time.Time
	Location          *Location
	Paid              *bool
	ParticipantLimit  *int
	RequestModeration *bool
	StateAction       *EventStateAction
}

// Validate checks bounds of the fields that are present.
func (p EventPatch) Validate() error {
	var v Validator
	if p.Annotation != nil {
		checkText(&v, "annotation", *p.Annotation, AnnotationMinLen, AnnotationMaxLen)
	}
	if p.Description != nil {
		checkText(&v, "description", *p.Description, DescriptionMinLen, DescriptionMaxLen)
	}
	if p.Title != nil {
		checkText(&v, "title", *p.Title, TitleMinLen, TitleMaxLen)
	}
	if p.CategoryID != nil {
		v.Check(*p.CategoryID != "", "category", "must not be blank")
	}
	if p.ParticipantLimit != nil {
		v.Check(*p.ParticipantLimit >= 0, "participantLimit", "must be 0 or greater")
	}
	if p.Location != nil {
		checkLocation(&v, *p.Location)
	}
	return v.Err()
}

func checkText(v *Validator, field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	v.Check(n >= min && n <= max, field, "length must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
}

func checkLocation(v *Validator, l Location) {
	v.Check(l.Lat >= -90 && l.Lat <= 90, "location.lat", "must be between -90 and 90")
	v.Check(l.Lon >= -180 && l.Lon <= 180, "location.lon", "must be between -180 and 180")
}

// EventSort is the ordering of public search results.
type EventSort string

const (
	SortEventDate EventSort = "EVENT_DATE"
	SortViews     EventSort = "VIEWS"
)

// PublicEventFilter selects published events for anonymous visitors.
type PublicEventFilter struct {
	Text          string
	Categories    []string
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          EventSort
	Page          Page
}

// AdminEventFilter selects events regardless of state.
type AdminEventFilter struct {
	Users      []string
	States     []EventState
	Categories []string
	RangeStart *time.Time
	RangeEnd   *time.Time
	Page       Page
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByIDForUpdate reads the event and holds its lock until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
	// Update persists editable fields, state and publication date. It never writes the confirmed counter.
	Update(ctx context.Context, event *Event) error
	ListByInitiator(ctx context.Context, initiatorID string, page Page) ([]*Event, error)
	// SearchPublic returns published events. A zero Page returns every match.
	SearchPublic(ctx context.Context, filter PublicEventFilter) ([]*Event, error)
	SearchAdmin(ctx context.Context, filter AdminEventFilter) ([]*Event, error)
}

// CapacityLedger admits confirmations against an event's participant limit.
type CapacityLedger interface {
	// Reserve atomically adds n to the confirmed counter when the limit allows it and
	// returns the new counter value. It fails with ErrCapacityExceeded otherwise.
	Reserve(ctx context.Context, eventID string, n int) (int, error)
}

// EventService covers the write side of the event lifecycle.
type EventService interface {
	CreateEvent(ctx context.Context, initiatorID string, in NewEvent) (*Event, error)
	UpdateEventByInitiator(ctx context.Context, initiatorID, eventID string, patch EventPatch) (*Event, error)
	UpdateEventByAdmin(ctx context.Context, eventID string, patch EventPatch) (*Event, error)
}

// EventQueryService covers the read side. Public reads record views.
type EventQueryService interface {
	SearchPublic(ctx context.Context, filter PublicEventFilter, clientIP string) ([]*Event, error)
	GetPublished(ctx context.Context, eventID, clientIP string) (*Event, error)
	SearchAdmin(ctx context.Context, filter AdminEventFilter) ([]*Event, error)
	ListByInitiator(ctx context.Context, initiatorID string, page Page) ([]*Event, error)
	GetByInitiator(ctx context.Context, initiatorID, eventID string) (*Event, error)
}
