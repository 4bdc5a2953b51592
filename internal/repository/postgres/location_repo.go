package postgres

import (
	"context"
	"database/sql"

	"explorewithme/internal/domain"
)

type locationRepository struct {
	DB *sql.DB
}

// NewLocationRepository returns a domain.LocationRepository implemented with Postgres.
func NewLocationRepository(db *sql.DB) domain.LocationRepository {
	return &locationRepository{DB: db}
}

// FindOrCreate upserts on the (lat, lon) unique key. The no-op update makes RETURNING
// yield the existing row's id.
func (r *locationRepository) FindOrCreate(ctx context.Context, loc *domain.Location) error {
	query := `
		INSERT INTO locations (lat, lon)
		VALUES ($1, $2)
		ON CONFLICT (lat, lon) DO UPDATE SET lat = EXCLUDED.lat
		RETURNING id
	`
	return mapError(conn(ctx, r.DB).QueryRowContext(ctx, query, loc.Lat, loc.Lon).Scan(&loc.ID))
}
