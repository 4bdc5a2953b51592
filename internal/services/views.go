package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"explorewithme/internal/domain"

	"golang.org/x/sync/errgroup"
)

// hitConcurrency bounds the RecordHit calls in flight for one read.
const hitConcurrency = 8

// hitTimeout bounds one batch of hits, independent of the read that produced it.
const hitTimeout = 5 * time.Second

// viewResolver reads and records views through the external counter. Both paths are
// best effort: failures are logged and never reach the caller.
type viewResolver struct {
	counter domain.ViewCounter
	app     string
	logger  *slog.Logger
	now     func() time.Time

	hitTimeout time.Duration
	pending    sync.WaitGroup
}

func newViewResolver(counter domain.ViewCounter, app string, logger *slog.Logger) *viewResolver {
	return &viewResolver{counter: counter, app: app, logger: logger, now: time.Now, hitTimeout: hitTimeout}
}

// resolve sets Views on every event with one Counts call. On failure views stay 0.
func (v *viewResolver) resolve(ctx context.Context, events []*domain.Event) {
	if len(events) == 0 {
		return
	}
	uris := make([]string, 0, len(events))
	start := events[0].CreatedOn
	for _, e := range events {
		e.Views = 0
		uris = append(uris, domain.EventURI(e.ID))
		if e.CreatedOn.Before(start) {
			start = e.CreatedOn
		}
	}
	stats, err := v.counter.Counts(ctx, uris, start, v.now().UTC(), false)
	if err != nil {
		v.logger.WarnContext(ctx, "view counts unavailable", "events", len(events), "err", err)
		return
	}
	hits := make(map[string]int64, len(stats))
	for _, st := range stats {
		hits[st.URI] += st.Hits
	}
	for _, e := range events {
		e.Views = hits[domain.EventURI(e.ID)]
	}
}

// record sends one hit per event from ip in the background. The read returns without
// waiting, and cancelling its context does not drop the hits.
func (v *viewResolver) record(ctx context.Context, ip string, events []*domain.Event) {
	if len(events) == 0 {
		return
	}
	now := v.now().UTC().Truncate(time.Second)
	uris := make([]string, 0, len(events))
	for _, e := range events {
		uris = append(uris, domain.EventURI(e.ID))
	}

	ctx = context.WithoutCancel(ctx)
	v.pending.Add(1)
	go func() {
		defer v.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, v.hitTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(hitConcurrency)
		for _, uri := range uris {
			g.Go(func() error {
				hit := domain.Hit{App: v.app, URI: uri, IP: ip, Timestamp: now}
				if err := v.counter.RecordHit(gctx, hit); err != nil {
					v.logger.WarnContext(gctx, "record hit failed", "uri", uri, "err", err)
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// wait blocks until every hit batch started so far has finished.
func (v *viewResolver) wait() {
	v.pending.Wait()
}
