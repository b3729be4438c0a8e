package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gearscan/internal/domain"
	"gearscan/internal/ports"
)

// fakeRepo is an in-memory ports.SessionRepository safe for concurrent use
type fakeRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	order    []string
	active   string
	saveErr  error
	saves    int

	// When set, called after every Get returns (outside the lock), so tests
	// can interleave writes at exact points of a flow
	onGet func(id string)
}

var _ ports.SessionRepository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[string]*domain.Session)}
}

func (r *fakeRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	var result *domain.Session
	if ok {
		result = session.Clone()
	}
	r.mu.Unlock()

	if r.onGet != nil {
		r.onGet(id)
	}
	if result == nil {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	return result, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Session, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.sessions[id].Clone())
	}
	return result, nil
}

func (r *fakeRepo) Save(ctx context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.sessions[session.ID]; !ok {
		r.order = append(r.order, session.ID)
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *fakeRepo) SaveExpecting(ctx context.Context, session domain.Session, expected int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return false, r.saveErr
	}
	stored, ok := r.sessions[session.ID]
	if !ok {
		return false, fmt.Errorf("session %s: %w", session.ID, domain.ErrSessionNotFound)
	}
	if stored.Revision != expected {
		return false, nil
	}
	r.sessions[session.ID] = session.Clone()
	return true, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(r.sessions, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.active == id {
		r.active = ""
	}
	return nil
}

func (r *fakeRepo) GetActive(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, nil
}

func (r *fakeRepo) SetActive(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	r.active = id
	return nil
}

func (r *fakeRepo) ClearActive(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = ""
	return nil
}

func (r *fakeRepo) Close() error { return nil }

// mustGet reads the stored session directly, bypassing the port
func (r *fakeRepo) mustGet(id string) *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id].Clone()
}

// put stores a session directly, bypassing the port
func (r *fakeRepo) put(session *domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		r.order = append(r.order, session.ID)
	}
	r.sessions[session.ID] = session.Clone()
}

// fakeRemote is a scriptable ports.RemoteSessionService
type fakeRemote struct {
	mu        sync.Mutex
	createErr error
	updateErr error
	getResult *ports.RemoteSession
	getErr    error
	nextID    int
	creates   int
	updates   int
	lastSent  ports.RemotePayload

	// When set, Create/Update block until released, to simulate an
	// in-flight request
	blocked chan struct{}
	started chan struct{}
}

var _ ports.RemoteSessionService = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{}
}

func (r *fakeRemote) block() {
	r.blocked = make(chan struct{})
	r.started = make(chan struct{}, 4)
}

func (r *fakeRemote) waitUntilCalled() { <-r.started }

func (r *fakeRemote) release() { close(r.blocked) }

func (r *fakeRemote) maybeBlock() {
	if r.blocked != nil {
		r.started <- struct{}{}
		<-r.blocked
	}
}

func (r *fakeRemote) Create(ctx context.Context, payload ports.RemotePayload) (*ports.RemoteSession, error) {
	r.maybeBlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.lastSent = payload
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	return &ports.RemoteSession{
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		ID:        fmt.Sprintf("remote-%d", r.nextID),
		Items:     payload.Items,
		Name:      payload.Name,
	}, nil
}

func (r *fakeRemote) Update(ctx context.Context, id string, payload ports.RemotePayload) (*ports.RemoteSession, error) {
	r.maybeBlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	r.lastSent = payload
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return &ports.RemoteSession{
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		ID:        id,
		Items:     payload.Items,
		Name:      payload.Name,
	}, nil
}

func (r *fakeRemote) Get(ctx context.Context, id string) (*ports.RemoteSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.getResult != nil {
		return r.getResult, nil
	}
	return nil, fmt.Errorf("remote %s: %w", id, domain.ErrRemoteSessionNotFound)
}

// fakeLookup resolves barcodes from a fixed map
type fakeLookup struct {
	records map[string]domain.EquipmentRecord
}

var _ ports.EquipmentLookup = (*fakeLookup)(nil)

func (l *fakeLookup) LookupBarcode(ctx context.Context, barcode string) (*domain.EquipmentRecord, error) {
	rec, ok := l.records[barcode]
	if !ok {
		return nil, fmt.Errorf("barcode %s: %w", barcode, domain.ErrEquipmentNotFound)
	}
	return &rec, nil
}

// fakeClock is a deterministic ports.Clock whose tickers fire on demand
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
	tickers []*fakeTicker
}

var _ ports.Clock = (*fakeClock)(nil)

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{current: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

func (c *fakeClock) NewTicker(d time.Duration) ports.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticker := &fakeTicker{ch: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, ticker)
	return ticker
}

// Tick fires every ticker created so far once
func (c *fakeClock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ticker := range c.tickers {
		ticker.ch <- c.current
	}
}

type fakeTicker struct {
	ch chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               {}
