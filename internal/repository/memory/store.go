// Package memory is an in-process implementation of the storage interfaces.
// It serves the "memory" storage driver and the service tests.
package memory

import (
	"context"
	"sync"

	"explorewithme/internal/domain"

	"github.com/google/uuid"
)

// Store holds every table in maps guarded by one RWMutex. Transactions
// serialize per event through eventLocks and roll back through an undo journal.
type Store struct {
	mu         sync.RWMutex
	events     map[string]domain.Event
	requests   map[string]domain.ParticipationRequest
	categories map[string]domain.Category
	users      map[string]domain.UserShort
	locations  map[string]domain.Location
	locByPoint map[[2]float64]string

	locksMu    sync.Mutex
	eventLocks map[string]*sync.Mutex
}

// New returns an empty store.
func New() *Store {
	return &Store{
		events:     make(map[string]domain.Event),
		requests:   make(map[string]domain.ParticipationRequest),
		categories: make(map[string]domain.Category),
		users:      make(map[string]domain.UserShort),
		locations:  make(map[string]domain.Location),
		locByPoint: make(map[[2]float64]string),
		eventLocks: make(map[string]*sync.Mutex),
	}
}

// AddCategory inserts a category, assigning an id when empty.
func (s *Store) AddCategory(c domain.Category) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.categories[c.ID] = c
	return c
}

// AddUser inserts a user, assigning an id when empty.
func (s *Store) AddUser(u domain.UserShort) domain.UserShort {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u
	return u
}

// Events returns the event repository view of the store.
func (s *Store) Events() domain.EventRepository { return &eventRepository{s: s} }

// Requests returns the participation request repository view of the store.
func (s *Store) Requests() domain.RequestRepository { return &requestRepository{s: s} }

// Categories returns the category repository view of the store.
func (s *Store) Categories() domain.CategoryRepository { return &categoryRepository{s: s} }

// Users returns the user repository view of the store.
func (s *Store) Users() domain.UserRepository { return &userRepository{s: s} }

// Locations returns the location repository view of the store.
func (s *Store) Locations() domain.LocationRepository { return &locationRepository{s: s} }

// Ledger returns the capacity ledger view of the store.
func (s *Store) Ledger() domain.CapacityLedger { return &capacityLedger{s: s} }

type txKey struct{}

type tx struct {
	undo []func()
	held map[string]*sync.Mutex
}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

// WithinTx implements domain.Transactor. Event locks taken inside fn are
// released when it returns; on error every journaled write is undone first.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}
	t := &tx{held: make(map[string]*sync.Mutex)}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(t)
			s.release(t)
			panic(p)
		}
	}()
	err = fn(context.WithValue(ctx, txKey{}, t))
	if err != nil {
		s.rollback(t)
	}
	s.release(t)
	return err
}

func (s *Store) rollback(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (s *Store) release(t *tx) {
	for id, m := range t.held {
		m.Unlock()
		delete(t.held, id)
	}
}

// journal records an undo step when ctx carries a transaction. Callers hold s.mu.
func journal(ctx context.Context, undo func()) {
	if t := txFrom(ctx); t != nil {
		t.undo = append(t.undo, undo)
	}
}

// lockEvent acquires the per-event lock for the transaction in ctx.
// Without a transaction it is a no-op.
func (s *Store) lockEvent(ctx context.Context, eventID string) {
	t := txFrom(ctx)
	if t == nil {
		return
	}
	if _, ok := t.held[eventID]; ok {
		return
	}
	s.locksMu.Lock()
	m, ok := s.eventLocks[eventID]
	if !ok {
		m = &sync.Mutex{}
		s.eventLocks[eventID] = m
	}
	s.locksMu.Unlock()
	m.Lock()
	t.held[eventID] = m
}
