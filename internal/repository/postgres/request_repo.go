package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"explorewithme/internal/domain"

	"github.com/lib/pq"
)

const requestSelect = `SELECT id, event_id, requester_id, created, status FROM requests`

type requestRepository struct {
	DB *sql.DB
}

// NewRequestRepository returns a domain.RequestRepository implemented with Postgres.
func NewRequestRepository(db *sql.DB) domain.RequestRepository {
	return &requestRepository{DB: db}
}

func scanRequest(row rowScanner) (*domain.ParticipationRequest, error) {
	req := &domain.ParticipationRequest{}
	var status string
	if err := row.Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Created, &status); err != nil {
		return nil, err
	}
	req.Status = domain.RequestStatus(status)
	return req, nil
}

func (r *requestRepository) Create(ctx context.Context, req *domain.ParticipationRequest) error {
	query := `
		INSERT INTO requests (event_id, requester_id, created, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, req.EventID, req.RequesterID, req.Created, string(req.Status)).Scan(&req.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return fmt.Errorf("%w: participation request already exists", domain.ErrConflict)
		}
		return mapError(err)
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.ParticipationRequest, error) {
	req, err := scanRequest(conn(ctx, r.DB).QueryRowContext(ctx, requestSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return req, nil
}

func (r *requestRepository) GetActiveByEventAndRequester(ctx context.Context, eventID, requesterID string) (*domain.ParticipationRequest, error) {
	query := requestSelect + ` WHERE event_id = $1 AND requester_id = $2 AND status <> 'CANCELED'`
	req, err := scanRequest(conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, requesterID))
	if err != nil {
		return nil, mapError(err)
	}
	return req, nil
}

func (r *requestRepository) CountActiveByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status <> 'CANCELED'`, eventID).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *requestRepository) ListByEvent(ctx context.Context, eventID string, ids []string) ([]*domain.ParticipationRequest, error) {
	query := requestSelect + ` WHERE event_id = $1`
	args := []any{eventID}
	if len(ids) > 0 {
		query += ` AND id = ANY($2::uuid[])`
		args = append(args, pq.Array(ids))
	}
	query += ` ORDER BY created, id`
	return r.list(ctx, query, args...)
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domain.ParticipationRequest, error) {
	return r.list(ctx, requestSelect+` WHERE requester_id = $1 ORDER BY created, id`, requesterID)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, ids []string, status domain.RequestStatus) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE requests SET status = $1 WHERE id = ANY($2::uuid[])`, string(status), pq.Array(ids))
	if err != nil {
		return mapError(err)
	}
	rows, _ := result.RowsAffected()
	if rows != int64(len(ids)) {
		return fmt.Errorf("update status: %w: %d of %d requests", domain.ErrNotFound, rows, len(ids))
	}
	return nil
}

func (r *requestRepository) list(ctx context.Context, query string, args ...any) ([]*domain.ParticipationRequest, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	reqs := make([]*domain.ParticipationRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
