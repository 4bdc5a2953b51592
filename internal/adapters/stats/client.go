package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"explorewithme/internal/domain"
)

// TimeLayout is the timestamp format of the stats service, always in UTC.
const TimeLayout = "2006-01-02 15:04:05"

type hitRequest struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

type httpViewCounter struct {
	client  *http.Client
	baseURL string
}

// NewClient returns a ViewCounter that calls the stats service at baseURL.
func NewClient(baseURL string, client *http.Client) domain.ViewCounter {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpViewCounter{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *httpViewCounter) RecordHit(ctx context.Context, hit domain.Hit) error {
	body, err := json.Marshal(hitRequest{
		App:       hit.App,
		URI:       hit.URI,
		IP:        hit.IP,
		Timestamp: hit.Timestamp.UTC().Format(TimeLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to encode hit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send hit: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stats service returned status: %d", resp.StatusCode)
	}
	return nil
}

func (c *httpViewCounter) Counts(ctx context.Context, uris []string, start, end time.Time, unique bool) ([]domain.ViewStats, error) {
	q := url.Values{}
	q.Set("start", start.UTC().Format(TimeLayout))
	q.Set("end", end.UTC().Format(TimeLayout))
	for _, uri := range uris {
		q.Add("uris", uri)
	}
	q.Set("unique", strconv.FormatBool(unique))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service returned status: %d", resp.StatusCode)
	}

	var data []domain.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode stats response: %w", err)
	}
	return data, nil
}
