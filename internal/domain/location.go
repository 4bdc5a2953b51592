package domain

import "context"

// Location is a point deduplicated by exact coordinates.
type Location struct {
	ID  string  `json:"-"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationRepository stores locations.
type LocationRepository interface {
	// FindOrCreate sets loc.ID to the row with identical coordinates, inserting one if needed.
	FindOrCreate(ctx context.Context, loc *Location) error
}
