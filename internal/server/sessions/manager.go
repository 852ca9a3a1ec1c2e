// Package sessions keeps in-flight logins of remote callers between
// requests.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/server/services"
	"github.com/google/uuid"
)

// seams for tests
var (
	newID = uuid.NewString
	now   = time.Now
)

type entry struct {
	login    *services.Login
	lastSeen time.Time
}

// Manager maps session ids to logins. Sessions idle for longer than ttl
// are forgotten; a locked session is forgotten once its lockout delay
// elapses.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{ttl: ttl, sessions: make(map[string]*entry)}
}

// Add stores l under a new id and returns the id.
func (m *Manager) Add(l *services.Login) string {
	id := newID()

	m.mu.Lock()
	m.sessions[id] = &entry{login: l, lastSeen: now()}
	m.mu.Unlock()

	l.OnLockout(func() { m.Remove(id) })
	return id
}

// Get returns the login stored under id and refreshes its idle timer.
func (m *Manager) Get(id string) (*services.Login, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, common.ErrSessionUnknown
	}
	t := now()
	if m.ttl > 0 && t.Sub(e.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, common.ErrSessionUnknown
	}
	e.lastSeen = t
	return e.login, nil
}

// Remove forgets id. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of stored sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops every session idle for longer than ttl and returns how many
// were dropped.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := now()
	n := 0
	for id, e := range m.sessions {
		if t.Sub(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
