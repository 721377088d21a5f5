package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager is the process-wide registry of cart sessions, one per storefront
// session ID. Sessions are created and initialized lazily on first access so
// handlers never see an un-Init'ed session.
type Manager struct {
	mu       sync.Mutex
	store    CartStore
	log      logrus.FieldLogger
	sessions map[string]*Session
}

func NewManager(store CartStore, log logrus.FieldLogger) *Manager {
	return &Manager{
		store:    store,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live session for sessionID, creating and loading it
// from the persistence slot if this is the first access.
func (m *Manager) Session(ctx context.Context, sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}
	s := NewSession(m.store, sessionID, m.log)
	s.Init(ctx)
	m.sessions[sessionID] = s
	return s
}

// Drop forgets the in-memory session. The persisted slot is left alone; the
// next access restores from it.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len reports how many sessions are live. Exposed for tests and diagnostics.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
