// Package session keeps one in-memory store per browser session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"todolists/internal/storage"
)

type entry struct {
	store    *storage.SessionStore
	lastSeen time.Time
}

// Registry maps session ids to their stores. Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	now      func() time.Time
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*entry),
		now:      time.Now,
	}
}

// Get returns the store for id. Unknown or malformed ids are replaced by a
// freshly generated id with an empty store; callers must send the returned id
// back to the client.
func (r *Registry) Get(id string) (string, *storage.SessionStore) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if parsed, err := uuid.Parse(id); err == nil {
		if e, ok := r.sessions[parsed]; ok {
			e.lastSeen = r.now()
			return parsed.String(), e.store
		}
	}

	fresh := uuid.New()
	e := &entry{
		store:    storage.NewSessionStore(),
		lastSeen: r.now(),
	}
	r.sessions[fresh] = e
	return fresh.String(), e.store
}

// Delete forgets a session
func (r *Registry) Delete(id string) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, parsed)
}

// Prune drops sessions that have not been used for longer than maxIdle and
// returns how many were removed
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
