package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keys one Store per browser session. The HTTP layer binds a
// session-id cookie to a Store; everything below it only ever sees a
// single Store.
type Manager struct {
	mu         sync.RWMutex
	stores     map[string]*managed
	newStorage func() Storage
	maxAge     time.Duration
	nowTime    func() time.Time
}

type managed struct {
	store     *Store
	createdAt time.Time
}

// ManagerOption modifies a Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager creates a Manager whose stores are backed by storages
// from newStorage. Stores older than maxAge are dropped on lookup;
// maxAge <= 0 disables expiry.
func NewManager(newStorage func() Storage, maxAge time.Duration, options ...ManagerOption) *Manager {
	m := &Manager{
		stores:     make(map[string]*managed),
		newStorage: newStorage,
		maxAge:     maxAge,
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// New allocates a fresh browser session and returns its ID and Store.
func (m *Manager) New() (string, *Store) {
	sid := uuid.New().String()
	store := NewStore(m.newStorage())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores[sid] = &managed{store: store, createdAt: m.nowTime()}
	return sid, store
}

// Get returns the Store bound to sid. Expired or unknown IDs report
// not-found; the caller allocates a fresh session.
func (m *Manager) Get(sid string) (*Store, bool) {
	m.mu.RLock()
	entry, ok := m.stores[sid]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if m.maxAge > 0 && m.nowTime().Sub(entry.createdAt) > m.maxAge {
		m.Delete(sid)
		return nil, false
	}
	return entry.store, true
}

// Delete drops the session. Deleting an unknown ID is a no-op.
func (m *Manager) Delete(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sid)
}
