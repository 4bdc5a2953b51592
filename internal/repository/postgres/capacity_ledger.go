package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"explorewithme/internal/domain"
)

type capacityLedger struct {
	DB *sql.DB
}

// NewCapacityLedger returns a domain.CapacityLedger that admits confirmations with a
// single conditional UPDATE, so concurrent reservations on one event cannot both pass.
func NewCapacityLedger(db *sql.DB) domain.CapacityLedger {
	return &capacityLedger{DB: db}
}

func (l *capacityLedger) Reserve(ctx context.Context, eventID string, n int) (int, error) {
	if n < 0 {
		return 0, domain.NewValidationError("count", "must not be negative")
	}
	q := conn(ctx, l.DB)
	query := `
		UPDATE events SET confirmed_requests = confirmed_requests + $2
		WHERE id = $1 AND (participant_limit = 0 OR confirmed_requests + $2 <= participant_limit)
		RETURNING confirmed_requests
	`
	var confirmed int
	err := q.QueryRowContext(ctx, query, eventID, n).Scan(&confirmed)
	if err == nil {
		return confirmed, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("reserve: %w", mapError(err))
	}
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("reserve: %w", mapError(err))
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrCapacityExceeded
}
