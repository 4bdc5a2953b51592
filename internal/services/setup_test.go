package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"explorewithme/internal/domain"
	"explorewithme/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeViewCounter is an in-memory ViewCounter for tests.
type fakeViewCounter struct {
	mu       sync.Mutex
	hits     []domain.Hit
	counts   map[string]int64
	countErr error
	hitErr   error
	calls    int

	// block, when set, holds every RecordHit until it is closed.
	block   chan struct{}
	hitCtxs []error
}

func newFakeViewCounter() *fakeViewCounter {
	return &fakeViewCounter{counts: make(map[string]int64)}
}

func (f *fakeViewCounter) RecordHit(ctx context.Context, hit domain.Hit) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hitCtxs = append(f.hitCtxs, ctx.Err())
	if f.hitErr != nil {
		return f.hitErr
	}
	f.hits = append(f.hits, hit)
	return nil
}

func (f *fakeViewCounter) Counts(ctx context.Context, uris []string, start, end time.Time, unique bool) ([]domain.ViewStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.countErr != nil {
		return nil, f.countErr
	}
	var out []domain.ViewStats
	for _, uri := range uris {
		if n, ok := f.counts[uri]; ok {
			out = append(out, domain.ViewStats{App: "ewm-main-service", URI: uri, Hits: n})
		}
	}
	return out, nil
}

func (f *fakeViewCounter) contextErrs() []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]error(nil), f.hitCtxs...)
}

func (f *fakeViewCounter) recorded() []domain.Hit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Hit(nil), f.hits...)
}

type testEnv struct {
	store         *memory.Store
	stores        Stores
	now           time.Time
	counter       *fakeViewCounter
	category      domain.Category
	initiator     domain.UserShort
	events        *eventService
	participation *participationService
	queries       *eventQueryService
}

const testLeadTime = 2 * time.Hour

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	stores := Stores{
		Tx:         store,
		Events:     store.Events(),
		Requests:   store.Requests(),
		Categories: store.Categories(),
		Users:      store.Users(),
		Locations:  store.Locations(),
		Ledger:     store.Ledger(),
	}
	env := &testEnv{
		store:     store,
		stores:    stores,
		now:       time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
		counter:   newFakeViewCounter(),
		category:  store.AddCategory(domain.Category{Name: "Concerts"}),
		initiator: store.AddUser(domain.UserShort{Name: "Initiator"}),
	}
	clock := func() time.Time { return env.now }

	env.events = NewEventService(stores, testLeadTime, time.Second).(*eventService)
	env.events.now = clock
	env.participation = NewParticipationService(stores, time.Second).(*participationService)
	env.participation.now = clock
	env.queries = NewEventQueryService(stores, env.counter, "ewm-main-service", testLogger, time.Second).(*eventQueryService)
	env.queries.now = clock
	env.queries.views.now = clock
	return env
}

func (env *testEnv) addUser(name string) domain.UserShort {
	return env.store.AddUser(domain.UserShort{Name: name})
}

func (env *testEnv) newEventInput() domain.NewEvent {
	return domain.NewEvent{
		Annotation:        strings.Repeat("a", 30),
		CategoryID:        env.category.ID,
		Description:       strings.Repeat("d", 50),
		Title:             "Jazz night",
		EventDate:         env.now.Add(48 * time.Hour),
		Location:          domain.Location{Lat: 55.75, Lon: 37.61},
		RequestModeration: true,
	}
}

// createEvent creates a PENDING event owned by env.initiator.
func (env *testEnv) createEvent(t *testing.T, limit int, moderation bool) *domain.Event {
	t.Helper()
	in := env.newEventInput()
	in.ParticipantLimit = limit
	in.RequestModeration = moderation
	e, err := env.events.CreateEvent(context.Background(), env.initiator.ID, in)
	require.NoError(t, err)
	return e
}

// publishedEvent creates and publishes an event owned by env.initiator.
func (env *testEnv) publishedEvent(t *testing.T, limit int, moderation bool) *domain.Event {
	t.Helper()
	e := env.createEvent(t, limit, moderation)
	action := domain.ActionPublishEvent
	published, err := env.events.UpdateEventByAdmin(context.Background(), e.ID, domain.EventPatch{StateAction: &action})
	require.NoError(t, err)
	return published
}

func (env *testEnv) getEvent(t *testing.T, id string) *domain.Event {
	t.Helper()
	e, err := env.stores.Events.GetByID(context.Background(), id)
	require.NoError(t, err)
	return e
}

func (env *testEnv) requestStatus(t *testing.T, id string) domain.RequestStatus {
	t.Helper()
	req, err := env.stores.Requests.GetByID(context.Background(), id)
	require.NoError(t, err)
	return req.Status
}

var errCounterDown = errors.New("stats service unavailable")
