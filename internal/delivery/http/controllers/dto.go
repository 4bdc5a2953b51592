package controllers

import (
	"explorewithme/internal/delivery/http/helpers"
	"explorewithme/internal/domain"
)

// CategoryDto is a category reference inside an event.
type CategoryDto struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserShortDto is the initiator reference inside an event.
type UserShortDto struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocationDto is an event venue.
type LocationDto struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EventShortDto is the list representation of an event.
// swagger:model EventShortDto
type EventShortDto struct {
	ID                string            `json:"id"`
	Annotation        string            `json:"annotation"`
	Category          CategoryDto       `json:"category"`
	ConfirmedRequests int               `json:"confirmedRequests"`
	EventDate         helpers.Timestamp `json:"eventDate" swaggertype:"string" example:"2030-01-02 18:00:00"`
	Initiator         UserShortDto      `json:"initiator"`
	Paid              bool              `json:"paid"`
	Title             string            `json:"title"`
	Views             int64             `json:"views"`
}

// EventFullDto is the detailed representation of an event.
// swagger:model EventFullDto
type EventFullDto struct {
	ID                string             `json:"id"`
	Annotation        string             `json:"annotation"`
	Category          CategoryDto        `json:"category"`
	ConfirmedRequests int                `json:"confirmedRequests"`
	CreatedOn         helpers.Timestamp  `json:"createdOn" swaggertype:"string" example:"2030-01-01 12:00:00"`
	Description       string             `json:"description"`
	EventDate         helpers.Timestamp  `json:"eventDate" swaggertype:"string" example:"2030-01-02 18:00:00"`
	Initiator         UserShortDto       `json:"initiator"`
	Location          LocationDto        `json:"location"`
	Paid              bool               `json:"paid"`
	ParticipantLimit  int                `json:"participantLimit"`
	PublishedOn       *helpers.Timestamp `json:"publishedOn" swaggertype:"string" example:"2030-01-01 13:00:00"`
	RequestModeration bool               `json:"requestModeration"`
	State             domain.EventState  `json:"state"`
	Title             string             `json:"title"`
	Views             int64              `json:"views"`
}

func toEventShort(e *domain.Event) EventShortDto {
	return EventShortDto{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          CategoryDto{ID: e.Category.ID, Name: e.Category.Name},
		ConfirmedRequests: e.ConfirmedRequests,
		EventDate:         helpers.NewTimestamp(e.EventDate),
		Initiator:         UserShortDto{ID: e.Initiator.ID, Name: e.Initiator.Name},
		Paid:              e.Paid,
		Title:             e.Title,
		Views:             e.Views,
	}
}

func toEventShorts(events []*domain.Event) []EventShortDto {
	out := make([]EventShortDto, 0, len(events))
	for _, e := range events {
		out = append(out, toEventShort(e))
	}
	return out
}

func toEventFull(e *domain.Event) EventFullDto {
	return EventFullDto{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          CategoryDto{ID: e.Category.ID, Name: e.Category.Name},
		ConfirmedRequests: e.ConfirmedRequests,
		CreatedOn:         helpers.NewTimestamp(e.CreatedOn),
		Description:       e.Description,
		EventDate:         helpers.NewTimestamp(e.EventDate),
		Initiator:         UserShortDto{ID: e.Initiator.ID, Name: e.Initiator.Name},
		Location:          LocationDto{Lat: e.Location.Lat, Lon: e.Location.Lon},
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		PublishedOn:       helpers.NewTimestampPtr(e.PublishedOn),
		RequestModeration: e.RequestModeration,
		State:             e.State,
		Title:             e.Title,
		Views:             e.Views,
	}
}

func toEventFulls(events []*domain.Event) []EventFullDto {
	out := make([]EventFullDto, 0, len(events))
	for _, e := range events {
		out = append(out, toEventFull(e))
	}
	return out
}

// NewEventRequest is the request body for POST /users/{userId}/events.
// requestModeration defaults to true and participantLimit to 0 (unlimited).
type NewEventRequest struct {
	Annotation        string             `json:"annotation"`
	Category          string             `json:"category"`
	Description       string             `json:"description"`
	EventDate         *helpers.Timestamp `json:"eventDate" swaggertype:"string" example:"2030-01-02 18:00:00"`
	Location          *LocationDto       `json:"location"`
	Paid              bool               `json:"paid"`
	ParticipantLimit  int                `json:"participantLimit"`
	RequestModeration *bool              `json:"requestModeration"`
	Title             string             `json:"title"`
}

// Validate implements helpers.Validator for fields the domain cannot see as missing.
func (n NewEventRequest) Validate() error {
	var v domain.Validator
	v.Check(n.EventDate != nil, "eventDate", "is required")
	v.Check(n.Location != nil, "location", "is required")
	return v.Err()
}

func (n NewEventRequest) toDomain() domain.NewEvent {
	in := domain.NewEvent{
		Annotation:        n.Annotation,
		CategoryID:        n.Category,
		Description:       n.Description,
		Title:             n.Title,
		EventDate:         n.EventDate.Time,
		Location:          domain.Location{Lat: n.Location.Lat, Lon: n.Location.Lon},
		Paid:              n.Paid,
		ParticipantLimit:  n.ParticipantLimit,
		RequestModeration: true,
	}
	if n.RequestModeration != nil {
		in.RequestModeration = *n.RequestModeration
	}
	return in
}

// UpdateEventRequest is the body of both edit endpoints. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Annotation        *string            `json:"annotation"`
	Category          *string            `json:"category"`
	Description       *string            `json:"description"`
	EventDate         *helpers.Timestamp `json:"eventDate" swaggertype:"string" example:"2030-01-02 18:00:00"`
	Location          *LocationDto       `json:"location"`
	Paid              *bool              `json:"paid"`
	ParticipantLimit  *int               `json:"participantLimit"`
	RequestModeration *bool              `json:"requestModeration"`
	StateAction       *string            `json:"stateAction" enums:"PUBLISH_EVENT,REJECT_EVENT,SEND_TO_REVIEW,CANCEL_REVIEW"`
	Title             *string            `json:"title"`
}

func (u UpdateEventRequest) toDomain() domain.EventPatch {
	p := domain.EventPatch{
		Annotation:        u.Annotation,
		CategoryID:        u.Category,
		Description:       u.Description,
		Title:             u.Title,
		Paid:              u.Paid,
		ParticipantLimit:  u.ParticipantLimit,
		RequestModeration: u.RequestModeration,
	}
	if u.EventDate != nil {
		t := u.EventDate.Time
		p.EventDate = &t
	}
	if u.Location != nil {
		p.Location = &domain.Location{Lat: u.Location.Lat, Lon: u.Location.Lon}
	}
	if u.StateAction != nil {
		a := domain.EventStateAction(*u.StateAction)
		p.StateAction = &a
	}
	return p
}

// ParticipationRequestDto is a participation request on the wire.
// swagger:model ParticipationRequestDto
type ParticipationRequestDto struct {
	ID        string               `json:"id"`
	Event     string               `json:"event"`
	Requester string               `json:"requester"`
	Created   helpers.Timestamp    `json:"created" swaggertype:"string" example:"2030-01-01 12:00:00"`
	Status    domain.RequestStatus `json:"status"`
}

func toRequestDto(r *domain.ParticipationRequest) ParticipationRequestDto {
	return ParticipationRequestDto{
		ID:        r.ID,
		Event:     r.EventID,
		Requester: r.RequesterID,
		Created:   helpers.NewTimestamp(r.Created),
		Status:    r.Status,
	}
}

func toRequestDtos(reqs []*domain.ParticipationRequest) []ParticipationRequestDto {
	out := make([]ParticipationRequestDto, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRequestDto(r))
	}
	return out
}

// RequestStatusUpdateRequest is the body of the moderation endpoint.
type RequestStatusUpdateRequest struct {
	RequestIDs []string `json:"requestIds"`
	Status     string   `json:"status" enums:"CONFIRMED,REJECTED"`
}

// RequestStatusUpdateResult lists the requests changed by one moderation batch.
// swagger:model RequestStatusUpdateResult
type RequestStatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestDto `json:"confirmedRequests"`
	RejectedRequests  []ParticipationRequestDto `json:"rejectedRequests"`
}
