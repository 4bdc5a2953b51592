package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"explorewithme/internal/domain"

	"github.com/lib/pq"
)

const eventSelect = `
	SELECT e.id, e.annotation, c.id, c.name, e.description, e.title,
		u.id, u.name, l.id, l.lat, l.lon,
		e.event_date, e.created_on, e.published_on, e.paid, e.participant_limit,
		e.request_moderation, e.confirmed_requests, e.state
	FROM events e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.initiator_id
	JOIN locations l ON l.id = e.location_id`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var publishedOn sql.NullTime
	var state string
	err := row.Scan(
		&e.ID, &e.Annotation, &e.Category.ID, &e.Category.Name, &e.Description, &e.Title,
		&e.Initiator.ID, &e.Initiator.Name, &e.Location.ID, &e.Location.Lat, &e.Location.Lon,
		&e.EventDate, &e.CreatedOn, &publishedOn, &e.Paid, &e.ParticipantLimit,
		&e.RequestModeration, &e.ConfirmedRequests, &state,
	)
	if err != nil {
		return nil, err
	}
	if publishedOn.Valid {
		e.PublishedOn = &publishedOn.Time
	}
	e.State = domain.EventState(state)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (annotation, category_id, description, title, initiator_id, location_id,
			event_date, created_on, published_on, paid, participant_limit, request_moderation,
			confirmed_requests, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.Annotation, e.Category.ID, e.Description, e.Title, e.Initiator.ID, e.Location.ID,
		e.EventDate, e.CreatedOn, e.PublishedOn, e.Paid, e.ParticipantLimit, e.RequestModeration,
		e.ConfirmedRequests, string(e.State),
	).Scan(&e.ID)
	return mapError(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, eventSelect+` WHERE e.id = $1 FOR UPDATE OF e`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET annotation = $1, category_id = $2, description = $3, title = $4,
			location_id = $5, event_date = $6, published_on = $7, paid = $8,
			participant_limit = $9, request_moderation = $10, state = $11
		WHERE id = $12
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.Annotation, e.Category.ID, e.Description, e.Title,
		e.Location.ID, e.EventDate, e.PublishedOn, e.Paid,
		e.ParticipantLimit, e.RequestModeration, string(e.State),
		e.ID,
	)
	if err != nil {
		return mapError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListByInitiator(ctx context.Context, initiatorID string, page domain.Page) ([]*domain.Event, error) {
	var w whereBuilder
	w.add("e.initiator_id = $%d", initiatorID)
	return r.list(ctx, w, "e.id", page)
}

func (r *eventRepository) SearchPublic(ctx context.Context, f domain.PublicEventFilter) ([]*domain.Event, error) {
	var w whereBuilder
	w.add("e.state = $%d", string(domain.EventStatePublished))
	if text := strings.TrimSpace(f.Text); text != "" {
		w.add("(e.annotation ILIKE $%[1]d OR e.description ILIKE $%[1]d)", "%"+likeEscaper.Replace(text)+"%")
	}
	if len(f.Categories) > 0 {
		w.add("e.category_id = ANY($%d::uuid[])", pq.Array(f.Categories))
	}
	if f.Paid != nil {
		w.add("e.paid = $%d", *f.Paid)
	}
	if f.RangeStart != nil {
		w.add("e.event_date >= $%d", *f.RangeStart)
	}
	if f.RangeEnd != nil {
		w.add("e.event_date <= $%d", *f.RangeEnd)
	}
	if f.OnlyAvailable {
		w.raw("(e.participant_limit = 0 OR e.confirmed_requests < e.participant_limit)")
	}
	return r.list(ctx, w, "e.event_date, e.id", f.Page)
}

func (r *eventRepository) SearchAdmin(ctx context.Context, f domain.AdminEventFilter) ([]*domain.Event, error) {
	var w whereBuilder
	if len(f.Users) > 0 {
		w.add("e.initiator_id = ANY($%d::uuid[])", pq.Array(f.Users))
	}
	if len(f.States) > 0 {
		states := make([]string, 0, len(f.States))
		for _, s := range f.States {
			states = append(states, string(s))
		}
		w.add("e.state = ANY($%d::text[])", pq.Array(states))
	}
	if len(f.Categories) > 0 {
		w.add("e.category_id = ANY($%d::uuid[])", pq.Array(f.Categories))
	}
	if f.RangeStart != nil {
		w.add("e.event_date >= $%d", *f.RangeStart)
	}
	if f.RangeEnd != nil {
		w.add("e.event_date <= $%d", *f.RangeEnd)
	}
	return r.list(ctx, w, "e.id", f.Page)
}

func (r *eventRepository) list(ctx context.Context, w whereBuilder, orderBy string, page domain.Page) ([]*domain.Event, error) {
	query := eventSelect + w.sql() + " ORDER BY " + orderBy
	args := w.args
	if !page.Unbounded() {
		args = append(args, page.Size, page.From)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a condition whose format refers to the new argument's position.
func (w *whereBuilder) add(format string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) raw(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
