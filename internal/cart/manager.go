package cart

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	idleTTL       = 30 * time.Minute
	sweepInterval = 5 * time.Minute
)

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Manager hands out one Store per cart session, creating and initializing it
// on first use. Two sessions never share in-memory state; if the same session
// id is live in two app instances the last writer to storage wins.
//
// Entries idle past idleTTL are evicted on the next Get after sweepInterval
// elapses. Carts live durably in storage and rehydrate on the session's next
// request, so eviction loses nothing.
type Manager struct {
	mu         sync.Mutex
	entries    map[string]*entry
	newStorage func(sessionID string) Storage
	logger     *log.Logger
	now        func() time.Time
	lastSweep  time.Time
}

func NewManager(newStorage func(sessionID string) Storage, logger *log.Logger) *Manager {
	return &Manager{
		entries:    make(map[string]*entry),
		newStorage: newStorage,
		logger:     logger,
		now:        time.Now,
		lastSweep:  time.Now(),
	}
}

// Get returns the store for the session, rehydrating it from storage the
// first time the session is seen by this instance.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	now := m.now()

	m.mu.Lock()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.evictIdle(now)
		m.lastSweep = now
	}
	e, ok := m.entries[sessionID]
	if !ok {
		e = &entry{store: NewStore(m.newStorage(sessionID), m.logger)}
		m.entries[sessionID] = e
	}
	e.lastSeen = now
	m.mu.Unlock()

	e.store.Initialize(ctx)
	return e.store
}

func (m *Manager) evictIdle(now time.Time) {
	for id, e := range m.entries {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(m.entries, id)
		}
	}
}
