package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"explorewithme/internal/domain"
)

// TimeLayout is the wire format of every timestamp, interpreted as UTC.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp marshals a time.Time in TimeLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns t in UTC truncated to seconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// NewTimestampPtr returns nil for a nil t.
func NewTimestampPtr(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	ts := NewTimestamp(*t)
	return &ts
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string in format %q", TimeLayout)
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("timestamp %q must match format %q", s, TimeLayout)
	}
	t.Time = parsed
	return nil
}

// ParseTimeQuery reads an optional TimeLayout query parameter.
func ParseTimeQuery(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return nil, domain.NewValidationError(name, "must match format "+TimeLayout)
	}
	return &t, nil
}
