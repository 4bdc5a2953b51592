package domain

import (
	"context"
	"time"
)

// Hit is one recorded view of a public resource.
type Hit struct {
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

// ViewStats is the aggregate view count for one resource.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// ViewCounter is the external view counting service.
type ViewCounter interface {
	RecordHit(ctx context.Context, hit Hit) error
	Counts(ctx context.Context, uris []string, start, end time.Time, unique bool) ([]ViewStats, error)
}

// EventURI is the resource path under which views of an event are counted.
func EventURI(eventID string) string {
	return "/events/" + eventID
}
